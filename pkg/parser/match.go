package parser

// MatchBracket finds the counterpart of the loop bracket at index i.
// A nesting counter starts at zero, counts the bracket at i itself, and the
// match is the first index where it returns to zero: scanning forward from a
// loop start, backward from a loop end. ok is false when no match exists or
// the instruction at i is not a bracket.
func MatchBracket(instructions []ParsedInstruction, i int) (int, bool) {
	if i < 0 || i >= len(instructions) {
		return 0, false
	}

	step := 0
	switch instructions[i].Op {
	case OpLoopStart:
		step = 1
	case OpLoopEnd:
		step = -1
	default:
		return 0, false
	}

	depth := 0
	for j := i; j >= 0 && j < len(instructions); j += step {
		switch instructions[j].Op {
		case OpLoopStart:
			depth++
		case OpLoopEnd:
			depth--
		}
		if depth == 0 {
			return j, true
		}
	}

	return 0, false
}
