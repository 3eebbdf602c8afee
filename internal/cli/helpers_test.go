package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidanlsb/project-cli/internal/engine"
	"github.com/aidanlsb/project-cli/internal/store"
)

func TestResolveCommandUsesRegistry(t *testing.T) {
	tests := []struct {
		args        []string
		wantID      string
		wantMutates bool
	}{
		{args: []string{"goto", "add"}, wantID: "goto_add", wantMutates: true},
		{args: []string{"goto", "list"}, wantID: "goto_list", wantMutates: false},
		{args: []string{"remove"}, wantID: "remove", wantMutates: true},
		{args: []string{"import"}, wantID: "import", wantMutates: true},
		{args: []string{"alfred", "projects"}, wantID: "alfred_projects", wantMutates: false},
		{args: []string{"export"}, wantID: "export", wantMutates: false},
	}

	for _, tt := range tests {
		a := newApp(Options{Out: io.Discard, Err: io.Discard})
		cmd, _, err := a.rootCommand().Find(tt.args)
		if err != nil {
			t.Fatalf("Find(%v): %v", tt.args, err)
		}
		a.resolveCommand(cmd, nil)
		if a.commandID != tt.wantID || a.mutates != tt.wantMutates {
			t.Errorf("%v: got id=%q mutates=%v, want id=%q mutates=%v",
				tt.args, a.commandID, a.mutates, tt.wantID, tt.wantMutates)
		}
	}
}

func TestResolveCommandSelectShorthand(t *testing.T) {
	a := newApp(Options{Out: io.Discard, Err: io.Discard})
	root := a.rootCommand()

	a.resolveCommand(root, []string{"alpha"})
	if a.commandID != "select" || !a.mutates {
		t.Fatalf("root with a name: id=%q mutates=%v", a.commandID, a.mutates)
	}

	b := newApp(Options{Out: io.Discard, Err: io.Discard})
	b.resolveCommand(b.rootCommand(), nil)
	if b.commandID != "" || b.mutates {
		t.Fatalf("bare root: id=%q mutates=%v", b.commandID, b.mutates)
	}
}

func TestUpdateStoreRefusesReadOnlyCommands(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "projects.json")
	a := newApp(Options{Out: io.Discard, Err: io.Discard})
	a.resolvedDataPath = dataPath
	a.commandID = "list"

	called := false
	_, _, err := a.updateStore(context.Background(), func(s *store.Store) (engine.Result, error) {
		called = true
		return engine.AddProject(s, "alpha", false)
	})
	if err == nil || !strings.Contains(err.Error(), `"list"`) {
		t.Fatalf("expected refusal naming the command, got %v", err)
	}
	if called {
		t.Fatal("mutation must not run for a read-only command")
	}
	if _, err := os.Stat(dataPath); !os.IsNotExist(err) {
		t.Fatalf("store must not be written, stat err = %v", err)
	}
	if _, err := os.Stat(dataPath + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("lock must not be taken, stat err = %v", err)
	}
}

func TestUpdateStoreSavesForMutatingCommands(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "projects.json")
	a := newApp(Options{Out: io.Discard, Err: io.Discard})
	a.resolvedDataPath = dataPath
	a.commandID = "add"
	a.mutates = true

	res, s, err := a.updateStore(context.Background(), func(s *store.Store) (engine.Result, error) {
		return engine.AddProject(s, "alpha", false)
	})
	if err != nil {
		t.Fatalf("updateStore: %v", err)
	}
	if !res.Changed || s.Active != "alpha" {
		t.Fatalf("unexpected result %+v, active %q", res, s.Active)
	}
	content, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if !strings.Contains(string(content), `"alpha"`) {
		t.Fatalf("store missing project:\n%s", content)
	}
}
