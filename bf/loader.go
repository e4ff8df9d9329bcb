package bf

import "github.com/golang/glog"

// operator glyphs.
const (
	glyphMoveLeft  = '<'
	glyphMoveRight = '>'
	glyphIncrease  = '+'
	glyphDecrease  = '-'
	glyphLoopBegin = '['
	glyphLoopEnd   = ']'
	glyphRead      = ','
	glyphPrint     = '.'
	glyphDebug     = '#'
	glyphSeparator = '!'
)

func glyphKind(b byte) (Kind, bool) {
	switch b {
	case glyphMoveLeft:
		return MoveLeft, true
	case glyphMoveRight:
		return MoveRight, true
	case glyphIncrease:
		return Increase, true
	case glyphDecrease:
		return Decrease, true
	case glyphRead:
		return Read, true
	case glyphPrint:
		return Print, true
	case glyphDebug:
		return Debug, true
	default:
		return Nop, false
	}
}

// Load validates src and compiles it into a Program. Only
// ErrUnbalancedBrackets is ever returned; a load failure never partially
// populates a Program.
func Load(src *Buffer) (*Program, error) {
	raw := src.Bytes()

	codeLen, err := checkBalance(raw)
	if err != nil {
		return nil, err
	}
	code := raw[:codeLen]

	l := &loader{src: code}
	root, _ := l.parseSequence()

	var input *Buffer
	if codeLen < len(raw) {
		glog.V(1).Infof("bf: loader: %d bytes of embedded input found after '!'", len(raw)-codeLen-1)
		input = NewBufferFromBytes(raw[codeLen+1:])
	} else {
		input = NewBuffer(0)
	}

	return newProgram(l.nodes, root, input), nil
}

// checkBalance scans raw up to the first '!' (or to the end), counting '['
// as +1 and ']' as -1. It returns the length of the code prefix (excluding
// any '!') on success.
func checkBalance(raw []byte) (int, error) {
	depth := 0
	i := 0
	for ; i < len(raw); i++ {
		switch raw[i] {
		case glyphSeparator:
			goto done
		case glyphLoopBegin:
			depth++
		case glyphLoopEnd:
			depth--
			if depth < 0 {
				return 0, ErrUnbalancedBrackets
			}
		}
	}
done:
	if depth != 0 {
		return 0, ErrUnbalancedBrackets
	}
	return i, nil
}

// loader performs a recursive-descent fold of the source into counted,
// run-length-folded instructions, over a prefix already known to have
// balanced brackets.
type loader struct {
	src   []byte
	pos   int
	nodes []node
}

func (l *loader) newNode(kind Kind, quantity int) int {
	l.nodes = append(l.nodes, node{kind: kind, quantity: quantity, next: noID, body: noID})
	return len(l.nodes) - 1
}

func (l *loader) setNext(id, next int) {
	l.nodes[id].next = next
}

func (l *loader) setBody(id, body int) {
	l.nodes[id].body = body
}

// parseSequence parses instructions starting at l.pos until it consumes a
// matching ']' or runs out of source, and returns the id of the first
// instruction in the sequence (synthesising a Nop per the empty-body
// guard) plus whether it stopped because of a ']'.
func (l *loader) parseSequence() (int, bool) {
	var first, last int = noID, noID
	closedByBracket := false

	for l.pos < len(l.src) {
		b := l.src[l.pos]

		if b == glyphLoopEnd {
			l.pos++
			id := l.newNode(LoopEnd, 1)
			first, last = l.link(first, last, id)
			closedByBracket = true
			break
		}

		if b == glyphLoopBegin {
			l.pos++
			beginID := l.newNode(LoopBegin, 1)
			bodyID, _ := l.parseSequence()
			l.setBody(beginID, bodyID)
			first, last = l.link(first, last, beginID)
			continue
		}

		if kind, ok := glyphKind(b); ok {
			run := 1
			l.pos++
			for l.pos < len(l.src) && l.src[l.pos] == b {
				run++
				l.pos++
			}
			id := l.newNode(kind, run)
			first, last = l.link(first, last, id)
			continue
		}

		// comment byte: not an operator, not '[' or ']'; skip it.
		l.pos++
	}

	if first == noID {
		glog.V(1).Infof("bf: loader: empty sequence, synthesising Nop")
		first = l.newNode(Nop, 1)
	}
	return first, closedByBracket
}

// link appends id to the sequence (first, last) and returns the updated
// pair.
func (l *loader) link(first, last, id int) (int, int) {
	if first == noID {
		return id, id
	}
	l.setNext(last, id)
	return first, id
}
