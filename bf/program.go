package bf

// Program pairs a loaded instruction tree with the bytes, if any, that
// were embedded in the source after the "!" delimiter.
type Program struct {
	nodes []node
	root  int
	input *Buffer
}

// newEmptyProgram returns the canonical empty program: a single Nop with
// no successor, and a zero-length embedded-input buffer. It is the default
// program a fresh Interpreter is constructed with. (A failed Load returns
// no Program at all.)
func newEmptyProgram() *Program {
	p := &Program{input: NewBuffer(0)}
	p.root = p.newNode(Nop, 1)
	return p
}

// newProgram assembles a Program from an arena of nodes already built by
// the loader, its root id, and the embedded-input buffer split off the
// source.
func newProgram(nodes []node, root int, input *Buffer) *Program {
	return &Program{nodes: nodes, root: root, input: input}
}

// Root returns the first instruction of the program.
func (p *Program) Root() Instruction {
	return Instruction{prog: p, id: p.root}
}

// EmbeddedInput returns the buffer of bytes, if any, that followed the "!"
// delimiter in the source this program was loaded from. A program with no
// embedded input has a zero-length buffer, never a nil one.
func (p *Program) EmbeddedInput() *Buffer {
	return p.input
}
