package parser

import (
	"cae/pkg/lexer"
	"fmt"
)

type Operation string

// List of instruction operations
const (
	OpRight     Operation = ">"
	OpLeft      Operation = "<"
	OpReset     Operation = "~"
	OpPlus      Operation = "+"
	OpMinus     Operation = "-"
	OpLoopStart Operation = "["
	OpLoopEnd   Operation = "]"
	OpRead      Operation = ","
	OpWrite     Operation = "."
	OpQuote     Operation = "\""
	OpSend      Operation = "^"
	OpReceive   Operation = "&"
	OpCall      Operation = "call"
)

type RefKind uint8

const (
	RefSame    RefKind = iota // call without `@`: the caller's own region
	RefNamed                  // a declared region by name
	RefDynamic                // `$`: resolved at run time
)

// Ref names the region an instruction acts on.
type Ref struct {
	Kind RefKind
	Name string // set for RefNamed only
}

// Named returns a reference to the region called name
func Named(name string) Ref {
	return Ref{Kind: RefNamed, Name: name}
}

// Dynamic returns a back-reference
func Dynamic() Ref {
	return Ref{Kind: RefDynamic}
}

func (r Ref) String() string {
	switch r.Kind {
	case RefNamed:
		return r.Name
	case RefDynamic:
		return string(lexer.BACK_REF)
	default:
		return ""
	}
}

// ParsedInstruction is an instruction as written, with symbolic names and no jump targets.
type ParsedInstruction struct {
	Op        Operation
	Value     byte   // OpQuote literal
	Procedure string // OpCall target
	Region    Ref    // OpSend, OpReceive, OpCall
	Pos       lexer.Position
}

// String returns the source form of the instruction
func (i ParsedInstruction) String() string {
	switch i.Op {
	case OpQuote:
		return fmt.Sprintf("%s%02X", i.Op, i.Value)
	case OpSend, OpReceive:
		return string(i.Op) + i.Region.String()
	case OpCall:
		if i.Region.Kind == RefSame {
			return i.Procedure
		}
		return i.Procedure + string(lexer.AT) + i.Region.String()
	default:
		return string(i.Op)
	}
}

type ParsedRegion struct {
	Name string
	Size int
	Pos  lexer.Position
}

type ParsedProcedure struct {
	Name         string
	Instructions []ParsedInstruction
	Anonymous    bool // hoisted from a parenthesized block
	Pos          lexer.Position
}

// Reference is a symbolic name used by an instruction.
type Reference struct {
	Name      string
	Procedure bool // false for regions
	Pos       lexer.Position
}

// References returns every statically checkable name the procedure uses.
// Dynamic back-references are skipped.
func (p ParsedProcedure) References() []Reference {
	var refs []Reference
	for _, in := range p.Instructions {
		if in.Op == OpCall {
			refs = append(refs, Reference{Name: in.Procedure, Procedure: true, Pos: in.Pos})
		}

		switch in.Op {
		case OpSend, OpReceive, OpCall:
			if in.Region.Kind == RefNamed {
				refs = append(refs, Reference{Name: in.Region.Name, Pos: in.Pos})
			}
		}
	}

	return refs
}

// Result is the unresolved program produced by Parse.
type Result struct {
	Regions    []ParsedRegion
	Procedures []ParsedProcedure
}
