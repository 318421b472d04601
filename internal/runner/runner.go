package runner

import (
	"cae/internal/config"
	"cae/pkg/color"
	"cae/pkg/interpreter"
	"cae/pkg/parser"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

type Runner struct {
	Help       bool   // Show help message
	Verbose    bool   // Enable verbose output
	NoColor    bool   // Disable colored output
	Trace      bool   // Log every frame dispatch
	MaxSteps   int    // Instruction limit, 0 = unlimited
	SourceFile string // Path to the source file
	ConfigFile string // Path to an optional YAML config

	Stdin  io.Reader // program input, os.Stdin when nil
	Stdout io.Writer // program output, os.Stdout when nil
	Stderr io.Writer // diagnostics, os.Stderr when nil
}

// Merge fills settings not given on the command line from cfg
func (opts *Runner) Merge(cfg config.Config) {
	if opts.SourceFile == "" {
		opts.SourceFile = cfg.Source
	}
	if opts.MaxSteps == 0 {
		opts.MaxSteps = cfg.MaxSteps
	}
	opts.Verbose = opts.Verbose || cfg.Verbose
	opts.NoColor = opts.NoColor || cfg.NoColor
	opts.Trace = opts.Trace || cfg.Trace
}

// Run loads the source file and, if it is valid, executes it.
// Trace raises the default logger to debug so dispatches are visible without Verbose.
func (opts *Runner) Run() error {
	if opts.Trace {
		log.SetLevel(log.DebugLevel)
	}
	log.Info("Processing file", "file", opts.SourceFile)

	program, err := interpreter.LoadFile(opts.SourceFile)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			fmt.Fprintln(opts.stderr(), color.BrightRedText("=== Load Error ==="))
			fmt.Fprintln(opts.stderr(), perr.Pretty())
		}
		return fmt.Errorf("loading failed: %w", err)
	}

	if opts.Verbose {
		opts.dump(program)
	}

	it := interpreter.NewInterpreter(program,
		interpreter.WithReader(opts.stdin()),
		interpreter.WithWriter(opts.stdout()),
		interpreter.WithMaxSteps(opts.MaxSteps),
		interpreter.WithTrace(opts.Trace))

	if err := it.Run(); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	return nil
}

// dump prints every compiled procedure with resolved jump targets
func (opts *Runner) dump(program *interpreter.Program) {
	w := opts.stderr()
	fmt.Fprintln(w, color.GreenText("=== Compiled Procedures ==="))

	procs := program.Procedures()
	if len(procs) == 0 {
		fmt.Fprintln(w, color.GrayText("No procedures."))
		return
	}

	for _, proc := range procs {
		name := color.CyanText(proc.Name)
		if proc.Anonymous {
			name = color.GrayText(proc.Name)
		}

		fmt.Fprintf(w, "%s:", name)
		for i, in := range proc.Instructions {
			fmt.Fprintf(w, " %s%s", color.GrayText(fmt.Sprintf("%d:", i)), color.YellowText(in.String()))
		}
		fmt.Fprintln(w)
	}
}

func (opts *Runner) stdin() io.Reader {
	if opts.Stdin == nil {
		return os.Stdin
	}
	return opts.Stdin
}

func (opts *Runner) stdout() io.Writer {
	if opts.Stdout == nil {
		return os.Stdout
	}
	return opts.Stdout
}

func (opts *Runner) stderr() io.Writer {
	if opts.Stderr == nil {
		return os.Stderr
	}
	return opts.Stderr
}
