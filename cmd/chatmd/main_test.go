package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options
	}{
		{"defaults", nil, options{}},
		{"help", []string{"--help"}, options{help: true}},
		{"text with width", []string{"-t", "-w", "40"}, options{text: true, width: 40}},
		{"long width", []string{"--text", "--width=72", "doc.md"}, options{text: true, width: 72, input: "doc.md"}},
		{"output", []string{"-o", "out.html", "-"}, options{output: "out.html", input: "-"}},
		{"long output", []string{"--output=out.html"}, options{output: "out.html"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if err != nil {
				t.Fatalf("parseArgs(%v) error: %v", tt.args, err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(options{})); diff != "" {
				t.Fatalf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	if _, err := parseArgs([]string{"-w"}); !errors.Is(err, errMissingValue) {
		t.Fatalf("expected missing value error, got %v", err)
	}
	if _, err := parseArgs([]string{"-o"}); !errors.Is(err, errMissingValue) {
		t.Fatalf("expected missing value error, got %v", err)
	}
	if _, err := parseArgs([]string{"-w", "wide"}); err == nil {
		t.Fatalf("expected invalid width error")
	}
	if _, err := parseArgs([]string{"--bogus"}); err == nil {
		t.Fatalf("expected unknown argument error")
	}
	if _, err := parseArgs([]string{"a.md", "b.md"}); err == nil {
		t.Fatalf("expected error for second positional argument")
	}
}

func TestRunRendersStdin(t *testing.T) {
	var out bytes.Buffer
	if err := run(options{}, strings.NewReader("# Hi\n"), &out); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got := out.String(); got != "<h1>Hi</h1>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunTextMode(t *testing.T) {
	var out bytes.Buffer
	if err := run(options{text: true}, strings.NewReader("- a\n- b"), &out); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got := out.String(); got != "• a\n• b\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.md")
	output := filepath.Join(dir, "doc.html")
	if err := os.WriteFile(input, []byte("**x**"), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var stdout bytes.Buffer
	if err := run(options{input: input, output: output}, strings.NewReader(""), &stdout); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", stdout.String())
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := string(data); got != "<p><strong>x</strong></p>" {
		t.Fatalf("unexpected file output %q", got)
	}
}

func TestRunMissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.md")
	if err := run(options{input: missing}, strings.NewReader(""), &bytes.Buffer{}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestPrintHelp(t *testing.T) {
	var out bytes.Buffer
	printHelp(&out)
	if !strings.Contains(out.String(), "USAGE:") {
		t.Fatalf("expected usage text, got %q", out.String())
	}
}
