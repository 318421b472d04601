package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"cae/pkg/region"
	"cae/pkg/stack"

	"github.com/charmbracelet/log"
)

// Interpreter runs a Program on an explicit work stack. Procedure calls never
// recurse natively.
type Interpreter struct {
	program *Program
	stack   *stack.Stack[StackFrame] // pending frames, LIFO

	// region bound to the innermost named (non-anonymous) procedure; `$` resolves here
	backRef string

	in  *bufio.Reader // source for `,`
	out *bufio.Writer // sink for `.`

	trace    bool // log every frame dispatch
	maxSteps int  // maximum instructions (0 = unlimited)
	stats    Stats
}

// Stats describes the most recent run.
type Stats struct {
	Steps     int // instructions executed
	Calls     int // call instructions executed
	TailCalls int // calls that pushed no resumption frame
	MaxDepth  int // largest work stack size observed
}

// Option configures an Interpreter in NewInterpreter
type Option func(*Interpreter)

// WithReader sets the input for `,`
func WithReader(r io.Reader) Option {
	return func(i *Interpreter) { i.in = bufio.NewReader(r) }
}

// WithWriter sets the output for `.`
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = bufio.NewWriter(w) }
}

// WithMaxSteps sets a maximum number of instructions before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithTrace logs each frame dispatch at debug level
func WithTrace(on bool) Option {
	return func(i *Interpreter) { i.trace = on }
}

// NewInterpreter creates an interpreter for p, reading stdin and writing stdout by default
func NewInterpreter(p *Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		program: p,
		backRef: EntryRegion,
	}

	for _, o := range opts {
		o(it)
	}

	if it.in == nil {
		it.in = bufio.NewReader(os.Stdin)
	}
	if it.out == nil {
		it.out = bufio.NewWriter(os.Stdout)
	}

	return it
}

// Run executes `main` on region `main` until the work stack is empty.
// Output is flushed before returning, including on error.
func (i *Interpreter) Run() (err error) {
	i.stack = stack.NewStack(StackFrame{Procedure: EntryProcedure, Region: EntryRegion})
	i.backRef = EntryRegion
	i.stats = Stats{MaxDepth: 1}

	defer func() {
		if ferr := i.out.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrOutputFailed, ferr)
		}
	}()

	for !i.stack.Empty() {
		frame, _ := i.stack.Pop()
		if err := i.dispatch(frame); err != nil {
			if i.trace {
				log.Debug("Run failed", "procedure", frame.Procedure, "region", frame.Region, "pending", i.Pending())
			}
			return err
		}
	}

	log.Debug("Run finished", "steps", i.stats.Steps, "calls", i.stats.Calls, "tail_calls", i.stats.TailCalls, "max_depth", i.stats.MaxDepth)
	return nil
}

// Stats returns counters for the most recent run
func (i *Interpreter) Stats() Stats {
	return i.stats
}

// Pending returns the frames still on the work stack, next to run first
func (i *Interpreter) Pending() []StackFrame {
	if i.stack == nil {
		return nil
	}

	frames := i.stack.Array()
	pending := make([]StackFrame, len(frames))
	for n, f := range frames {
		pending[len(frames)-1-n] = f
	}
	return pending
}

// Program returns the program being run
func (i *Interpreter) Program() *Program {
	return i.program
}

// dispatch runs one frame and schedules whatever call it ends with
func (i *Interpreter) dispatch(frame StackFrame) error {
	proc, ok := i.program.procedures[frame.Procedure]
	if !ok {
		return internalError("procedure", frame.Procedure)
	}

	reg, err := i.lookupRegion(frame.Region)
	if err != nil {
		return err
	}

	if !proc.Anonymous {
		i.backRef = frame.Region
	}

	if i.trace {
		log.Debug("Dispatch", "procedure", proc.Name, "region", frame.Region, "ip", frame.Pointer, "back_ref", i.backRef, "depth", i.stack.Size())
	}

	release, ok := reg.TryAcquire()
	if !ok {
		return fmt.Errorf("%w: region %q already held on dispatch", ErrInternal, frame.Region)
	}
	call, err := i.execute(proc, reg, frame.Pointer)
	release()
	if err != nil {
		return fmt.Errorf("%s@%s: %w", proc.Name, frame.Region, err)
	}

	if call == nil {
		return nil
	}

	i.stats.Calls++
	if call.Tail {
		i.stats.TailCalls++
	} else {
		i.stack.Push(StackFrame{Procedure: proc.Name, Region: frame.Region, Pointer: call.Resume})
	}
	i.stack.Push(StackFrame{Procedure: call.Procedure, Region: call.Region})

	if size := i.stack.Size(); size > i.stats.MaxDepth {
		i.stats.MaxDepth = size
	}

	return nil
}

// lookupRegion finds a region that load-time validation guarantees exists
func (i *Interpreter) lookupRegion(name string) (*region.Region, error) {
	reg, ok := i.program.regions[name]
	if !ok {
		return nil, internalError("region", name)
	}

	return reg, nil
}

func internalError(what, name string) error {
	return fmt.Errorf("%w: unknown %s %q", ErrInternal, what, name)
}

var (
	ErrInputExhausted   = errors.New("input exhausted")
	ErrInputFailed      = errors.New("input failed")
	ErrOutputFailed     = errors.New("output failed")
	ErrInternal         = errors.New("internal consistency violation")
	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
)
