package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/seam/internal/checker"
	"github.com/funvibe/seam/internal/config"
	"github.com/funvibe/seam/internal/lexer"
	"github.com/funvibe/seam/internal/modules"
	"github.com/funvibe/seam/internal/parser"
	"github.com/funvibe/seam/internal/pipeline"
	"github.com/funvibe/seam/internal/prettyprinter"
)

// Version can be overridden at build time:
// -ldflags "-X github.com/funvibe/seam/pkg/cli.Version=..."
var Version = "0.1.0"

// Entry is the command dispatcher. It returns the process exit code: 0 for
// success, 1 for check failures, 2 for usage and I/O problems.
func Entry(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	switch args[0] {
	case "check":
		return runCheck(args[1:], stdout, stderr)
	case "version", "-v", "-version", "--version":
		fmt.Fprintf(stdout, "seam %s\n", Version)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: seam <command> [args...]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  check <file>...   type-check source files\n")
	fmt.Fprintf(w, "  version           print the version\n")
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func runCheck(files []string, stdout, stderr io.Writer) int {
	if len(files) == 0 {
		fmt.Fprintf(stderr, "Error: no source files specified\nUsage: seam check <file> [<file2> ...]\n")
		return 2
	}

	colors := newPalette(stdout)
	exit := 0
	for _, file := range files {
		if !isSourceFile(file) {
			fmt.Fprintf(stderr, "Error: %s is not a source file (expected %s)\n",
				file, strings.Join(config.SourceFileExtensions, " or "))
			exit = 2
			continue
		}
		code, err := checkFile(file, stdout, colors)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exit = 2
			continue
		}
		if code != 0 && exit == 0 {
			exit = code
		}
	}
	return exit
}

func checkFile(path string, stdout io.Writer, colors palette) (int, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	project, err := modules.LoadProjectFor(path)
	if err != nil {
		return 0, err
	}
	env, preludeErrs := modules.PreludeEnv(project)
	if len(preludeErrs) > 0 {
		for _, e := range preludeErrs {
			fmt.Fprintf(stdout, "%s\n", e.Error())
		}
		return 1, nil
	}

	ctx := &pipeline.PipelineContext{
		FilePath:   path,
		SourceCode: string(source),
		Env:        env,
	}
	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&checker.CheckerProcessor{},
	).Run(ctx)

	return report(ctx, stdout, colors), nil
}

// report prints one file's outcome and returns 1 if anything failed.
func report(ctx *pipeline.PipelineContext, w io.Writer, colors palette) int {
	fmt.Fprintf(w, "%s:\n", ctx.FilePath)

	failed := 0
	for _, res := range ctx.Results {
		if res.Passed() {
			fmt.Fprintf(w, "  %s %s\n", colors.ok("ok  "), prettyprinter.Decl(res.Decl))
			for _, name := range sortedKeys(res.Bindings) {
				fmt.Fprintf(w, "       %s = %s\n", name, res.Bindings[name])
			}
			continue
		}
		failed++
		fmt.Fprintf(w, "  %s %s\n", colors.fail("FAIL"), prettyprinter.Decl(res.Decl))
		fmt.Fprintf(w, "       %v\n", res.Err)
	}

	// Non-assertion diagnostics (lexing, parsing, prelude wiring).
	reported := 0
	for _, err := range ctx.Errors {
		if err.Code == "T001" {
			continue // already shown next to its assertion
		}
		fmt.Fprintf(w, "  %s\n", err.Error())
		reported++
	}

	fmt.Fprintf(w, "%d passed, %d failed\n", len(ctx.Results)-failed, failed)
	if failed > 0 || reported > 0 {
		return 1
	}
	return 0
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// palette holds the status markers, colored when stdout is a terminal.
type palette struct {
	ok   func(string) string
	fail func(string) string
}

func newPalette(w io.Writer) palette {
	if !colorEnabled(w) {
		plain := func(s string) string { return s }
		return palette{ok: plain, fail: plain}
	}
	return palette{
		ok:   func(s string) string { return "\x1b[32m" + s + "\x1b[0m" },
		fail: func(s string) string { return "\x1b[31m" + s + "\x1b[0m" },
	}
}

func colorEnabled(w io.Writer) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
