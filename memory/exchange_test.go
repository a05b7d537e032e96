package memory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/petasbytes/todo-agent/internal/provider"
	"github.com/petasbytes/todo-agent/memory"
)

func TestExchange_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "last.json")

	in := memory.Exchange{User: "add milk to shopping-list", Agent: "Added - [ ] Milk."}
	if err := memory.SaveExchange(p, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := memory.LoadExchange(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out == nil || out.User != in.User || out.Agent != in.Agent {
		t.Fatalf("mismatch: got %+v want %+v", out, in)
	}
}

func TestExchange_LoadMissingReturnsNil(t *testing.T) {
	out, err := memory.LoadExchange(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil || out != nil {
		t.Fatalf("expected nil,nil; got %+v,%v", out, err)
	}
}

func TestExchange_LoadInvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(p, []byte("{oops"), 0o644); err != nil {
		t.Fatalf("prep: %v", err)
	}
	if _, err := memory.LoadExchange(p); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if _, err := memory.New(p); err == nil {
		t.Fatal("New should surface decode errors")
	}
}

func TestMemory_RecordSeedsHistory(t *testing.T) {
	p := filepath.Join(t.TempDir(), "last.json")
	m, err := memory.New(p)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if h := m.History(); h != nil {
		t.Fatalf("fresh memory should be empty, got %+v", h)
	}

	if err := m.Record("first", "one"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := m.Record("second", "two"); err != nil {
		t.Fatalf("record: %v", err)
	}

	h := m.History()
	if len(h) != 2 || h[0].Role != provider.RoleUser || h[0].Text != "second" || h[1].Role != provider.RoleModel || h[1].Text != "two" {
		t.Fatalf("only the last exchange should be kept, got %+v", h)
	}

	// A new process picks up the persisted exchange.
	again, err := memory.New(p)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if h := again.History(); len(h) != 2 || h[0].Text != "second" {
		t.Fatalf("persisted history: %+v", h)
	}
}

func TestMemory_InProcessOnly(t *testing.T) {
	m, err := memory.New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := m.Record("q", "a"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(m.History()) != 2 {
		t.Fatal("expected in-process history")
	}

	var nilMem *memory.Memory
	if nilMem.History() != nil || nilMem.Record("q", "a") != nil {
		t.Fatal("nil memory should be inert")
	}
}
