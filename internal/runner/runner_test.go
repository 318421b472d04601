package runner_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cae/internal/config"
	"cae/internal/logger"
	"cae/internal/runner"
	"cae/pkg/color"
	"cae/pkg/interpreter"
	"cae/pkg/parser"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.cae")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRunner(path, input string) (*runner.Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &runner.Runner{
		SourceFile: path,
		Stdin:      strings.NewReader(input),
		Stdout:     &stdout,
		Stderr:     &stderr,
	}, &stdout, &stderr
}

func TestRun(t *testing.T) {
	r, stdout, stderr := newRunner(writeSource(t, "region main[1];\nproc main: , + .;\n"), "a")

	if err := r.Run(); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "b" {
		t.Errorf("expected output b, got %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected diagnostics %q", stderr.String())
	}
}

func TestRunMissingFile(t *testing.T) {
	r, _, _ := newRunner(filepath.Join(t.TempDir(), "nope.cae"), "")

	if err := r.Run(); !errors.Is(err, parser.ErrMissingFile) {
		t.Errorf("expected ErrMissingFile, got %v", err)
	}
}

func TestRunReportsLoadErrors(t *testing.T) {
	defer color.EnableColor(color.IsColorEnabled())
	color.EnableColor(false)

	r, stdout, stderr := newRunner(writeSource(t, "region main[1];\nproc main: \"41. missing;\n"), "")

	err := r.Run()
	if !errors.Is(err, parser.ErrUndefinedReference) {
		t.Fatalf("expected ErrUndefinedReference, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should run after a load error, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Undefined reference `missing` at Line: 2, Column 17") {
		t.Errorf("unexpected diagnostics %q", stderr.String())
	}
}

func TestRunStepLimit(t *testing.T) {
	r, _, _ := newRunner(writeSource(t, "region main[1]; proc main: main;"), "")
	r.MaxSteps = 100

	if err := r.Run(); !errors.Is(err, interpreter.ErrMaxStepsExceeded) {
		t.Errorf("expected ErrMaxStepsExceeded, got %v", err)
	}
}

func TestVerboseDump(t *testing.T) {
	defer color.EnableColor(color.IsColorEnabled())
	color.EnableColor(false)

	r, _, stderr := newRunner(writeSource(t, "region main[1]; proc main: [-](+);"), "")
	r.Verbose = true

	if err := r.Run(); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"main-anon-1: 0:+", "main: 0:[2 1:- 2:]0 3:main-anon-1"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("dump missing %q:\n%s", want, stderr.String())
		}
	}
}

func TestMerge(t *testing.T) {
	r := &runner.Runner{SourceFile: "flag.cae", Verbose: true}
	r.Merge(config.Config{Source: "file.cae", MaxSteps: 10, Trace: true})

	if r.SourceFile != "flag.cae" || r.MaxSteps != 10 || !r.Trace || !r.Verbose || r.NoColor {
		t.Errorf("unexpected merge result %+v", r)
	}

	empty := &runner.Runner{}
	empty.Merge(config.Config{Source: "file.cae"})
	if empty.SourceFile != "file.cae" {
		t.Errorf("expected source from config, got %q", empty.SourceFile)
	}
}

func TestHelloExample(t *testing.T) {
	r, stdout, _ := newRunner(filepath.Join("..", "..", "examples", "hello.cae"), "")

	if err := r.Run(); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "Hello, world!\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestTraceWithoutVerbose(t *testing.T) {
	var logs bytes.Buffer
	logger.InitWriter(&logs, false, true)
	defer logger.InitWriter(os.Stderr, false, true)

	r, stdout, _ := newRunner(writeSource(t, "region main[1];\nproc main: \"41.;\n"), "")
	r.Trace = true

	if err := r.Run(); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "A" {
		t.Errorf("expected output %q, got %q", "A", stdout.String())
	}
	if !strings.Contains(logs.String(), "Dispatch") {
		t.Errorf("expected dispatch trace in logs, got %q", logs.String())
	}
}
