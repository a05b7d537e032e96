// Package config loads the agent's YAML configuration and resolves which
// provider, model and credential to use.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/petasbytes/todo-agent/internal/provider"
	"github.com/petasbytes/todo-agent/internal/safety"
	"github.com/petasbytes/todo-agent/internal/telemetry"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "todo-agent.yaml"

// DefaultHistoryFile stores the remembered exchange.
const DefaultHistoryFile = ".agent/last_exchange.json"

var (
	ErrNoCredentials   = errors.New("no API key found: set GOOGLE_GENERATIVE_AI_API_KEY, ANTHROPIC_API_KEY, or OPENAI_API_KEY")
	ErrUnknownProvider = errors.New("unknown provider")
)

// Keys holds per-provider API keys.
type Keys struct {
	Google    string `yaml:"google,omitempty"`
	Anthropic string `yaml:"anthropic,omitempty"`
	OpenAI    string `yaml:"openai,omitempty"`
}

// BaseURLs overrides provider endpoints, mainly for proxies and tests.
type BaseURLs struct {
	OpenAI    string `yaml:"openai,omitempty"`
	Anthropic string `yaml:"anthropic,omitempty"`
	Gemini    string `yaml:"gemini,omitempty"`
}

// Config holds all application configuration.
type Config struct {
	Provider             string           `yaml:"provider,omitempty"`
	Model                string           `yaml:"model,omitempty"`
	SandboxDir           string           `yaml:"sandbox_dir"`
	MaxSteps             int              `yaml:"max_steps"`
	LogLevel             string           `yaml:"log_level"`
	Markdown             bool             `yaml:"markdown"`
	RememberLastExchange bool             `yaml:"remember_last_exchange"`
	HistoryFile          string           `yaml:"history_file"`
	Telemetry            telemetry.Config `yaml:"telemetry"`
	Keys                 Keys             `yaml:"keys"`
	BaseURLs             BaseURLs         `yaml:"base_urls"`

	path      string
	fileFound bool
	env       Keys
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		SandboxDir:  safety.DefaultSandboxDir,
		MaxSteps:    10,
		LogLevel:    "warn",
		Markdown:    true,
		HistoryFile: DefaultHistoryFile,
		Telemetry:   telemetry.Config{Dir: telemetry.DefaultDir},
	}
}

// Load reads the YAML file at path (DefaultFile when empty) over the
// defaults, then applies environment fallbacks read through getenv.
// A missing file is not an error; unknown keys are.
func Load(path string, getenv func(string) string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()
	cfg.path = path

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg.fileFound = true
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.env = Keys{
		Google:    firstNonEmpty(getenv("GOOGLE_GENERATIVE_AI_API_KEY"), getenv("GEMINI_API_KEY")),
		Anthropic: getenv("ANTHROPIC_API_KEY"),
		OpenAI:    getenv("OPENAI_API_KEY"),
	}
	cfg.Telemetry = cfg.Telemetry.ApplyEnv(getenv)
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	return cfg, nil
}

// Path returns the config file path in use.
func (c *Config) Path() string { return c.path }

// FileFound reports whether the config file existed.
func (c *Config) FileFound() bool { return c.fileFound }

// Key returns the effective API key for a provider. File keys win over
// environment keys.
func (c *Config) Key(name string) string {
	switch name {
	case provider.Gemini, provider.GeminiChat:
		return firstNonEmpty(c.Keys.Google, c.env.Google)
	case provider.Anthropic:
		return firstNonEmpty(c.Keys.Anthropic, c.env.Anthropic)
	case provider.OpenAI:
		return firstNonEmpty(c.Keys.OpenAI, c.env.OpenAI)
	}
	return ""
}

func (c *Config) baseURL(name string) string {
	switch name {
	case provider.Gemini, provider.GeminiChat:
		return c.BaseURLs.Gemini
	case provider.Anthropic:
		return c.BaseURLs.Anthropic
	case provider.OpenAI:
		return c.BaseURLs.OpenAI
	}
	return ""
}

// Resolve picks the provider, model and credential. With no provider set,
// the first available key wins in the order Google, Anthropic, OpenAI.
func (c *Config) Resolve() (provider.Settings, error) {
	name := c.Provider
	if name == "" {
		for _, candidate := range []string{provider.Gemini, provider.Anthropic, provider.OpenAI} {
			if c.Key(candidate) != "" {
				name = candidate
				break
			}
		}
		if name == "" {
			return provider.Settings{}, ErrNoCredentials
		}
	}

	if provider.DefaultModel(name) == "" {
		return provider.Settings{}, fmt.Errorf("%w %q: expected one of %s", ErrUnknownProvider, name, strings.Join(provider.Names(), ", "))
	}
	key := c.Key(name)
	if key == "" {
		return provider.Settings{}, fmt.Errorf("%w (provider %s)", ErrNoCredentials, name)
	}

	model := c.Model
	if model == "" {
		model = provider.DefaultModel(name)
	}
	return provider.Settings{
		Provider: name,
		Model:    model,
		APIKey:   key,
		BaseURL:  c.baseURL(name),
	}, nil
}

// Masked returns a copy for display with effective keys masked.
func (c *Config) Masked() *Config {
	m := *c
	m.Keys = Keys{
		Google:    maskKey(c.Key(provider.Gemini)),
		Anthropic: maskKey(c.Key(provider.Anthropic)),
		OpenAI:    maskKey(c.Key(provider.OpenAI)),
	}
	m.env = Keys{}
	return &m
}

// YAML renders c in the file format.
func (c *Config) YAML() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(b), nil
}

// maskKey keeps the first and last four characters of long keys.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
