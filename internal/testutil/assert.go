package testutil

import (
	"strings"
	"testing"
)

// AssertStoreContains fails the test if the store file does not contain substr.
func (e *TestEnv) AssertStoreContains(substr string) {
	e.t.Helper()
	content := e.ReadStore()
	if !strings.Contains(content, substr) {
		e.t.Errorf("expected store to contain %q, got:\n%s", substr, content)
	}
}

// AssertStoreNotContains fails the test if the store file contains substr.
func (e *TestEnv) AssertStoreNotContains(substr string) {
	e.t.Helper()
	content := e.ReadStore()
	if strings.Contains(content, substr) {
		e.t.Errorf("expected store to not contain %q, got:\n%s", substr, content)
	}
}

// MustExit fails the test if the command exited with a different code.
func (r TextResult) MustExit(t *testing.T, code int) TextResult {
	t.Helper()
	if r.ExitCode != code {
		t.Fatalf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", r.ExitCode, code, r.Stdout, r.Stderr)
	}
	return r
}

// AssertStdout fails the test if stdout is not exactly want.
func (r TextResult) AssertStdout(t *testing.T, want string) {
	t.Helper()
	if r.Stdout != want {
		t.Errorf("stdout mismatch\ngot:\n%q\nwant:\n%q", r.Stdout, want)
	}
}

// AssertStderrContains fails the test if stderr does not contain substr.
func (r TextResult) AssertStderrContains(t *testing.T, substr string) {
	t.Helper()
	if !strings.Contains(r.Stderr, substr) {
		t.Errorf("expected stderr to contain %q, got:\n%s", substr, r.Stderr)
	}
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}
