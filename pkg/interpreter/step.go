package interpreter

import (
	"errors"
	"fmt"
	"io"

	"cae/pkg/parser"
	"cae/pkg/region"
)

// execute runs proc against reg starting at pointer until the procedure ends
// (nil call) or reaches a call instruction.
func (i *Interpreter) execute(proc *Procedure, reg *region.Region, pointer int) (*Call, error) {
	code := proc.Instructions

	for pointer < len(code) {
		if i.maxSteps > 0 && i.stats.Steps >= i.maxSteps {
			return nil, ErrMaxStepsExceeded
		}
		i.stats.Steps++

		in := code[pointer]
		next := pointer + 1

		switch in.Op {
		case parser.OpRight:
			reg.MoveRight()

		case parser.OpLeft:
			reg.MoveLeft()

		case parser.OpReset:
			reg.Jump(0, 0)

		case parser.OpPlus:
			reg.Increment()

		case parser.OpMinus:
			reg.Decrement()

		case parser.OpQuote:
			reg.Set(in.Value)

		case parser.OpLoopStart:
			// skip the body when the cell is zero
			if reg.Get() == 0 {
				next = in.Target + 1
			}

		case parser.OpLoopEnd:
			// repeat the body while the cell is non-zero
			if reg.Get() != 0 {
				next = in.Target + 1
			}

		case parser.OpRead:
			b, err := i.readByte()
			if err != nil {
				return nil, err
			}
			reg.Set(b)

		case parser.OpWrite:
			if err := i.out.WriteByte(reg.Get()); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrOutputFailed, err)
			}

		case parser.OpSend:
			target, err := i.resolve(in.Region, reg)
			if err != nil {
				return nil, err
			}
			// no-op while the target is held elsewhere in the chain
			if release, ok := target.TryAcquire(); ok {
				target.Set(reg.Get())
				release()
			}

		case parser.OpReceive:
			target, err := i.resolve(in.Region, reg)
			if err != nil {
				return nil, err
			}
			if release, ok := target.TryAcquireShared(); ok {
				reg.Set(target.Get())
				release()
			}

		case parser.OpCall:
			target, err := i.resolve(in.Region, reg)
			if err != nil {
				return nil, err
			}
			return &Call{
				Procedure: in.Procedure,
				Region:    target.Name(),
				Resume:    next,
				Tail:      next >= len(code),
			}, nil

		default:
			return nil, fmt.Errorf("%w: unknown operation %q", ErrInternal, in.Op)
		}

		pointer = next
	}

	return nil, nil
}

// resolve maps a region reference to a region, given the acting region
func (i *Interpreter) resolve(ref parser.Ref, acting *region.Region) (*region.Region, error) {
	switch ref.Kind {
	case parser.RefSame:
		return acting, nil
	case parser.RefNamed:
		return i.lookupRegion(ref.Name)
	case parser.RefDynamic:
		return i.lookupRegion(i.backRef)
	default:
		return nil, fmt.Errorf("%w: bad region reference kind %d", ErrInternal, ref.Kind)
	}
}

// readByte flushes pending output, then blocks for one input byte
func (i *Interpreter) readByte() (byte, error) {
	if err := i.out.Flush(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutputFailed, err)
	}

	b, err := i.in.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, ErrInputExhausted
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInputFailed, err)
	}

	return b, nil
}
