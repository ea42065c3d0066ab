package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "not found", err: NotFoundError("missing").Build(), expected: 3},
		{name: "config", err: ConfigError("bad pattern").Build(), expected: 7},
		{name: "filesystem", err: FileSystemError("write").Build(), expected: 11},
		{name: "navigation", err: NavigationError("too deep").Build(), expected: 12},
		{name: "internal", err: InternalError("boom").Build(), expected: 10},
		{name: "unclassified", err: errors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		err      error
		contains string
	}{
		{name: "nil error", err: nil, contains: ""},
		{name: "internal hidden", err: InternalError("internal issue").Build(), contains: "use -v for details"},
		{name: "internal verbose", verbose: true, err: InternalError("internal issue").Build(), contains: "internal issue"},
		{name: "config shows message", err: WrapError(errors.New("missing )"), CategoryConfig, "invalid file_pattern").Build(), contains: "invalid file_pattern: missing )"},
		{name: "unclassified", err: errors.New("plain failure"), contains: "Error: plain failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewCLIErrorAdapter(tt.verbose, slog.Default())
			got := adapter.FormatError(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("FormatError() = %q, want to contain %q", got, tt.contains)
			}
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("invalid file_pattern").WithContext("pattern", "(").Build())

	if code != 7 {
		t.Errorf("expected exit code 7, got %d", code)
	}
	if !strings.Contains(out.String(), "invalid file_pattern") {
		t.Errorf("expected message on output, got %q", out.String())
	}
	if !strings.Contains(logs.String(), "category=config") || !strings.Contains(logs.String(), "pattern=(") {
		t.Errorf("expected structured log attributes, got %q", logs.String())
	}

	code = -1
	adapter.HandleError(nil)
	if code != -1 {
		t.Error("expected nil error not to exit")
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.DiscardHandler)).WithOutput(&out)

	if code := adapter.Report(NotFoundError("configuration file not found").Build()); code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
	if out.String() != "Error: configuration file not found\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if code := adapter.Report(nil); code != 0 {
		t.Errorf("expected 0 for nil error, got %d", code)
	}
}
