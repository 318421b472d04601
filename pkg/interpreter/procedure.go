package interpreter

import (
	"cae/pkg/parser"
	"fmt"
	"strings"
)

// Instruction is the executable form of a parsed instruction. Loop brackets
// carry the index of their counterpart.
type Instruction struct {
	Op        parser.Operation
	Target    int        // OpLoopStart / OpLoopEnd: index of the matching bracket
	Value     byte       // OpQuote literal
	Procedure string     // OpCall target
	Region    parser.Ref // OpSend, OpReceive, OpCall
}

// String returns a string representation of the instruction
func (i Instruction) String() string {
	switch i.Op {
	case parser.OpLoopStart, parser.OpLoopEnd:
		return fmt.Sprintf("%s%d", i.Op, i.Target)
	default:
		return parser.ParsedInstruction{
			Op:        i.Op,
			Value:     i.Value,
			Procedure: i.Procedure,
			Region:    i.Region,
		}.String()
	}
}

// Procedure is an immutable, jump-resolved instruction sequence.
type Procedure struct {
	Name         string
	Instructions []Instruction
	Anonymous    bool
}

// Compile resolves the loop brackets of a parsed procedure
func Compile(pp parser.ParsedProcedure) (*Procedure, error) {
	code := make([]Instruction, len(pp.Instructions))

	for idx, in := range pp.Instructions {
		code[idx] = Instruction{
			Op:        in.Op,
			Value:     in.Value,
			Procedure: in.Procedure,
			Region:    in.Region,
		}

		if in.Op == parser.OpLoopStart || in.Op == parser.OpLoopEnd {
			target, ok := parser.MatchBracket(pp.Instructions, idx)
			if !ok {
				return nil, &parser.Error{Kind: parser.ErrUnmatchedBracket, Pos: in.Pos, Detail: pp.Name}
			}
			code[idx].Target = target
		}
	}

	return &Procedure{
		Name:         pp.Name,
		Instructions: code,
		Anonymous:    pp.Anonymous,
	}, nil
}

func (p *Procedure) String() string {
	parts := make([]string, len(p.Instructions))
	for i, in := range p.Instructions {
		parts[i] = in.String()
	}

	return p.Name + ": " + strings.Join(parts, " ")
}
