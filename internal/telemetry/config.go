package telemetry

// DefaultDir is where events.jsonl lives when no directory is configured.
const DefaultDir = ".agent"

// Config controls JSONL event emission.
type Config struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// ApplyEnv overlays AGT_OBSERVE_JSON and AGT_ARTIFACTS_DIR onto c.
// An explicit AGT_OBSERVE_JSON of "0" or "1" wins over the file value.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	switch getenv("AGT_OBSERVE_JSON") {
	case "1":
		c.Enabled = true
	case "0":
		c.Enabled = false
	}
	if dir := getenv("AGT_ARTIFACTS_DIR"); dir != "" {
		c.Dir = dir
	}
	return c
}

// EventsPath returns the JSONL file path for c.
func (c Config) EventsPath() string {
	dir := c.Dir
	if dir == "" {
		dir = DefaultDir
	}
	return dir + "/events.jsonl"
}
