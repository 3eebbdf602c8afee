package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aidanlsb/project-cli/internal/cli"
	"github.com/aidanlsb/project-cli/internal/shortcut"
)

// CLIResult represents the result of running a CLI command with --json.
type CLIResult struct {
	OK       bool
	Data     map[string]interface{}
	Error    *CLIError
	Warnings []CLIWarning
	Meta     *CLIMeta
	RawJSON  string
	Stderr   string
	ExitCode int
}

// CLIError represents a structured error from the CLI.
type CLIError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Suggestion string                 `json:"suggestion,omitempty"`
}

// CLIWarning represents a warning from the CLI.
type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// CLIMeta contains metadata from the response.
type CLIMeta struct {
	Count int `json:"count"`
}

// TextResult is the raw outcome of a command run without --json.
type TextResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func (e *TestEnv) options(stdin string, stdout, stderr *bytes.Buffer) cli.Options {
	return cli.Options{
		In:     strings.NewReader(stdin),
		Out:    stdout,
		Err:    stderr,
		Opener: shortcut.OpenerFunc(e.open),
		Expander: shortcut.Expander{
			HomeDir:   func() (string, error) { return e.Home, nil },
			LookupEnv: func(key string) (string, bool) {
				v, ok := e.env[key]
				return v, ok
			},
		},
		Getwd:  func() (string, error) { return e.Cwd, nil },
		Cloner: fakeCloner{env: e},
	}
}

func (e *TestEnv) baseArgs() []string {
	return []string{"--config", e.ConfigPath, "--data", e.DataPath}
}

// Run executes a command in-process and returns its raw output.
func (e *TestEnv) Run(args ...string) TextResult {
	e.t.Helper()
	return e.RunWithStdin("", args...)
}

// RunWithStdin executes a command in-process with stdin input.
func (e *TestEnv) RunWithStdin(stdin string, args ...string) TextResult {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli.Run(context.Background(), append(e.baseArgs(), args...), e.options(stdin, &stdout, &stderr))
	return TextResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: code}
}

// RunCLI executes a command with --json and parses the envelope.
func (e *TestEnv) RunCLI(args ...string) *CLIResult {
	e.t.Helper()
	res := e.Run(append([]string{"--json"}, args...)...)

	result := &CLIResult{
		RawJSON:  res.Stdout,
		Stderr:   res.Stderr,
		ExitCode: res.ExitCode,
	}

	var resp struct {
		OK       bool                   `json:"ok"`
		Data     map[string]interface{} `json:"data,omitempty"`
		Error    *CLIError              `json:"error,omitempty"`
		Warnings []CLIWarning           `json:"warnings,omitempty"`
		Meta     *CLIMeta               `json:"meta,omitempty"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &resp); err != nil {
		result.OK = false
		result.Error = &CLIError{
			Code:    "PARSE_ERROR",
			Message: "Failed to parse JSON output: " + err.Error(),
			Details: map[string]interface{}{"raw": res.Stdout},
		}
		return result
	}

	result.OK = resp.OK
	result.Data = resp.Data
	result.Error = resp.Error
	result.Warnings = resp.Warnings
	result.Meta = resp.Meta
	return result
}

// MustSucceed fails the test if the CLI command did not succeed.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK || r.ExitCode != 0 {
		errMsg := "unknown error"
		if r.Error != nil {
			errMsg = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("expected command to succeed, got exit %d: %s\nRaw output: %s", r.ExitCode, errMsg, r.RawJSON)
	}
	return r
}

// MustFail fails the test if the CLI command did not fail with the expected code.
func (r *CLIResult) MustFail(t *testing.T, expectedCode string) *CLIResult {
	t.Helper()
	if r.OK {
		t.Fatalf("expected command to fail with code %s, but it succeeded\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error == nil {
		t.Fatalf("expected error with code %s, but error is nil\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error.Code != expectedCode {
		t.Fatalf("expected error code %s, got %s: %s\nRaw output: %s", expectedCode, r.Error.Code, r.Error.Message, r.RawJSON)
	}
	return r
}

// DataList extracts a list from the Data field.
func (r *CLIResult) DataList(key string) []interface{} {
	if r.Data == nil {
		return nil
	}
	if list, ok := r.Data[key].([]interface{}); ok {
		return list
	}
	return nil
}

// DataString extracts a string from the Data field.
func (r *CLIResult) DataString(key string) string {
	if r.Data == nil {
		return ""
	}
	if s, ok := r.Data[key].(string); ok {
		return s
	}
	return ""
}
