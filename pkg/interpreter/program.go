package interpreter

import (
	"cae/pkg/parser"
	"cae/pkg/region"
	"io"

	"github.com/charmbracelet/log"
)

// Execution always starts with this procedure bound to this region.
const (
	EntryProcedure = "main"
	EntryRegion    = "main"
)

// Program owns every region and compiled procedure of a loaded source file.
// All symbolic names used by its procedures are known to resolve.
type Program struct {
	regions    map[string]*region.Region
	procedures map[string]*Procedure
	order      []string // procedure names in load order
}

// Load validates and compiles a parse result. No partial program is returned on failure.
func Load(r *parser.Result) (*Program, error) {
	if err := parser.Validate(r); err != nil {
		return nil, err
	}

	p := &Program{
		regions:    make(map[string]*region.Region, len(r.Regions)),
		procedures: make(map[string]*Procedure, len(r.Procedures)),
		order:      make([]string, 0, len(r.Procedures)),
	}

	for _, pr := range r.Regions {
		reg, err := region.New(pr.Name, pr.Size)
		if err != nil {
			return nil, &parser.Error{Kind: parser.ErrMalformedNumber, Pos: pr.Pos, Detail: pr.Name, Err: err}
		}
		p.regions[pr.Name] = reg
	}

	for _, pp := range r.Procedures {
		proc, err := Compile(pp)
		if err != nil {
			return nil, err
		}
		p.procedures[pp.Name] = proc
		p.order = append(p.order, pp.Name)
	}

	if _, ok := p.procedures[EntryProcedure]; !ok {
		return nil, &parser.Error{Kind: parser.ErrUndefinedReference, Detail: "proc " + EntryProcedure}
	}
	if _, ok := p.regions[EntryRegion]; !ok {
		return nil, &parser.Error{Kind: parser.ErrUndefinedReference, Detail: "region " + EntryRegion}
	}

	log.Debug("Program loaded", "regions", len(p.regions), "procedures", len(p.procedures))
	return p, nil
}

// LoadSource parses and loads a program from r
func LoadSource(r io.Reader) (*Program, error) {
	result, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}

	return Load(result)
}

// LoadFile parses and loads the program at path
func LoadFile(path string) (*Program, error) {
	result, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}

	return Load(result)
}

// Region returns the region called name
func (p *Program) Region(name string) (*region.Region, bool) {
	r, ok := p.regions[name]
	return r, ok
}

// Procedure returns the compiled procedure called name
func (p *Program) Procedure(name string) (*Procedure, bool) {
	proc, ok := p.procedures[name]
	return proc, ok
}

// Procedures returns all procedures in load order, hoisted blocks before their enclosing procedure
func (p *Program) Procedures() []*Procedure {
	procs := make([]*Procedure, len(p.order))
	for i, name := range p.order {
		procs[i] = p.procedures[name]
	}

	return procs
}
