package parser

// Validate checks a parsed program as a whole: unique names within each
// namespace, every symbolic reference declared, and every loop bracket matched.
// The first failure is returned.
func Validate(r *Result) error {
	procedures := make(map[string]bool, len(r.Procedures))
	for _, proc := range r.Procedures {
		if procedures[proc.Name] {
			return newError(ErrDuplicateProcedure, proc.Pos, proc.Name)
		}
		procedures[proc.Name] = true
	}

	regions := make(map[string]bool, len(r.Regions))
	for _, reg := range r.Regions {
		if regions[reg.Name] {
			return newError(ErrDuplicateRegion, reg.Pos, reg.Name)
		}
		regions[reg.Name] = true
	}

	for _, proc := range r.Procedures {
		for _, ref := range proc.References() {
			declared := regions[ref.Name]
			if ref.Procedure {
				declared = procedures[ref.Name]
			}
			if !declared {
				return newError(ErrUndefinedReference, ref.Pos, ref.Name)
			}
		}
	}

	for _, proc := range r.Procedures {
		if err := checkBrackets(proc); err != nil {
			return err
		}
	}

	return nil
}

// checkBrackets reports the first loop bracket in proc without a counterpart
func checkBrackets(proc ParsedProcedure) error {
	for i, in := range proc.Instructions {
		if in.Op != OpLoopStart && in.Op != OpLoopEnd {
			continue
		}
		if _, ok := MatchBracket(proc.Instructions, i); !ok {
			return newError(ErrUnmatchedBracket, in.Pos, string(in.Op))
		}
	}

	return nil
}
