package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kk-code-lab/chatmd"
	textutil "github.com/kk-code-lab/chatmd/internal/textutil"
)

func printHelp(w io.Writer) {
	fmt.Fprint(w, `chatmd - Render chat Markdown as HTML

USAGE:
    chatmd [OPTIONS] [FILE]

Reads FILE (or standard input when FILE is omitted or "-") and writes HTML.

OPTIONS:
    -h, --help            Show this help message and exit
    -t, --text            Write a plain-text preview instead of HTML
    -w, --width N         Limit plain-text tables and rules to N columns
    -o, --output FILE     Write to FILE instead of standard output
`)
}

type options struct {
	help   bool
	text   bool
	width  int
	input  string
	output string
}

var errMissingValue = errors.New("missing value")

func parseArgs(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "-t" || arg == "--text":
			opts.text = true
		case arg == "-w" || arg == "--width":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s: %w", arg, errMissingValue)
			}
			i++
			width, err := strconv.Atoi(args[i])
			if err != nil {
				return opts, fmt.Errorf("%s: invalid width %q", arg, args[i])
			}
			opts.width = width
		case strings.HasPrefix(arg, "--width="):
			width, err := strconv.Atoi(strings.TrimPrefix(arg, "--width="))
			if err != nil {
				return opts, fmt.Errorf("--width: invalid width %q", strings.TrimPrefix(arg, "--width="))
			}
			opts.width = width
		case arg == "-o" || arg == "--output":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s: %w", arg, errMissingValue)
			}
			i++
			opts.output = args[i]
		case strings.HasPrefix(arg, "--output="):
			opts.output = strings.TrimPrefix(arg, "--output=")
		case arg != "-" && strings.HasPrefix(arg, "-"):
			return opts, fmt.Errorf("unknown argument: %s", arg)
		default:
			if opts.input != "" {
				return opts, fmt.Errorf("unexpected argument: %s", arg)
			}
			opts.input = arg
		}
	}
	return opts, nil
}

func run(opts options, stdin io.Reader, stdout io.Writer) error {
	var content []byte
	var err error
	if opts.input == "" || opts.input == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(opts.input)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	text := textutil.NormalizeTextContent(content)
	var rendered string
	if opts.text {
		rendered = chatmd.RenderPlainText(text, opts.width)
		if rendered != "" {
			rendered += "\n"
		}
	} else {
		rendered = chatmd.RenderMarkdown(text)
	}

	if opts.output == "" {
		_, err = io.WriteString(stdout, rendered)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printHelp(os.Stderr)
		os.Exit(2)
	}
	if opts.help {
		printHelp(os.Stdout)
		os.Exit(0)
	}

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering markdown: %v\n", err)
		os.Exit(1)
	}
}
