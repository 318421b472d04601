package interpreter

// StackFrame is a pending unit of work on the explicit stack.
type StackFrame struct {
	Procedure string // procedure name for this frame
	Region    string // region the procedure runs against
	Pointer   int    // instruction pointer to resume at
}

// Call is produced when a procedure reaches a call instruction.
type Call struct {
	Procedure string // callee
	Region    string // resolved region the callee runs against
	Resume    int    // caller's next instruction, meaningless when Tail
	Tail      bool   // call was the caller's last reachable instruction
}
