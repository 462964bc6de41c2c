package bytecode

// DebugInfo stores the source location a single instruction was
// compiled from. It is optional: an Assembler that never calls
// SetDebugInfo produces a Program with an empty Debug table, and
// LineFor degrades to returning the zero DebugInfo.
type DebugInfo struct {
	Line     int
	Column   int
	File     string
	Function string
}

// SetDebugInfo records source location for the instruction at pos,
// growing the Debug table as needed.
func (a *Assembler) SetDebugInfo(pos int, info DebugInfo) {
	for len(a.prog.Debug) <= pos {
		a.prog.Debug = append(a.prog.Debug, DebugInfo{})
	}
	a.prog.Debug[pos] = info
}

// LineFor returns the debug info recorded for the instruction at pc, or
// the zero value if none was recorded.
func (p *Program) LineFor(pc int) DebugInfo {
	if pc >= 0 && pc < len(p.Debug) {
		return p.Debug[pc]
	}
	return DebugInfo{}
}
