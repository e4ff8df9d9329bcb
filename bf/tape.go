package bf

// chunkSize is the number of cells held by each tape segment. Segments are
// allocated lazily, on first touch, and linked into a doubly-linked list so
// that moving the cursor by any bounded amount is O(1) amortised even
// across an unbounded tape: each segment is a fixed-size backing array
// addressed by translating an absolute index into a (segment, offset) pair.
const chunkSize = 256

type chunk struct {
	cells      [chunkSize]int8
	index      int64 // chunk number; index*chunkSize is its first absolute cell
	prev, next *chunk
}

// Tape is an unbounded, signed-byte array indexed by a cursor. Cells are
// implicitly zero until written; the tape tracks the extreme indices ever
// visited by the cursor and supports a LIFO bookmark stack over cursor
// positions.
type Tape struct {
	cur    *chunk
	offset int // offset within cur, 0 <= offset < chunkSize

	position int64 // absolute cursor position
	lower    int64
	upper    int64

	bookmarks []int64
}

// NewTape returns a tape with a single zero cell, cursor at the origin.
func NewTape() *Tape {
	origin := &chunk{index: 0}
	return &Tape{
		cur:    origin,
		offset: 0,
	}
}

// GetCurrentValue returns the byte at the cursor.
func (t *Tape) GetCurrentValue() int8 {
	return t.cur.cells[t.offset]
}

// SetCurrentValue writes v at the cursor.
func (t *Tape) SetCurrentValue(v int8) {
	t.cur.cells[t.offset] = v
}

// IncreaseCurrentValueBy adds n to the cell at the cursor, wrapping modulo
// 256 with two's-complement truncation (n == 0 is a no-op).
func (t *Tape) IncreaseCurrentValueBy(n int8) {
	t.cur.cells[t.offset] += n
}

// DecreaseCurrentValueBy subtracts n from the cell at the cursor, with the
// same wraparound semantics as IncreaseCurrentValueBy.
func (t *Tape) DecreaseCurrentValueBy(n int8) {
	t.cur.cells[t.offset] -= n
}

// MoveLeftBy moves the cursor k positions toward lower indices, extending
// the tape with zero-valued cells as needed.
func (t *Tape) MoveLeftBy(k int) {
	for ; k > 0; k-- {
		t.stepLeft()
	}
}

// MoveRightBy moves the cursor k positions toward higher indices, extending
// the tape with zero-valued cells as needed.
func (t *Tape) MoveRightBy(k int) {
	for ; k > 0; k-- {
		t.stepRight()
	}
}

func (t *Tape) stepLeft() {
	if t.offset == 0 {
		if t.cur.prev == nil {
			t.cur.prev = &chunk{index: t.cur.index - 1, next: t.cur}
		}
		t.cur = t.cur.prev
		t.offset = chunkSize - 1
	} else {
		t.offset--
	}
	t.position--
	if t.position < t.lower {
		t.lower = t.position
	}
}

func (t *Tape) stepRight() {
	if t.offset == chunkSize-1 {
		if t.cur.next == nil {
			t.cur.next = &chunk{index: t.cur.index + 1, prev: t.cur}
		}
		t.cur = t.cur.next
		t.offset = 0
	} else {
		t.offset++
	}
	t.position++
	if t.position > t.upper {
		t.upper = t.position
	}
}

// IsAtBeginning reports whether the cursor equals the lowest index ever
// visited.
func (t *Tape) IsAtBeginning() bool {
	return t.position == t.lower
}

// IsAtEnd reports whether the cursor equals the highest index ever
// visited.
func (t *Tape) IsAtEnd() bool {
	return t.position == t.upper
}

// Position returns the cursor's absolute index, mainly useful for
// diagnostics (the default debug hook, the tui debugger).
func (t *Tape) Position() int64 {
	return t.position
}

// Bounds returns the lowest and highest indices ever visited.
func (t *Tape) Bounds() (lower, upper int64) {
	return t.lower, t.upper
}

// PushBookmark records the current cursor position on a LIFO stack.
func (t *Tape) PushBookmark() {
	t.bookmarks = append(t.bookmarks, t.position)
}

// PopBookmark restores the most recently pushed cursor position, returning
// false if the stack was empty (in which case the cursor is unchanged).
func (t *Tape) PopBookmark() bool {
	if len(t.bookmarks) == 0 {
		return false
	}
	n := len(t.bookmarks) - 1
	target := t.bookmarks[n]
	t.bookmarks = t.bookmarks[:n]
	t.seek(target)
	return true
}

// seek moves the cursor to an absolute position already known to lie
// within previously-visited territory (as is always true of a bookmarked
// position), stepping chunk-by-chunk so segment pointers stay consistent.
func (t *Tape) seek(target int64) {
	for t.position < target {
		t.stepRightNoBounds()
	}
	for t.position > target {
		t.stepLeftNoBounds()
	}
}

// stepLeftNoBounds/stepRightNoBounds move by one cell without touching
// lower/upper, used by seek: a bookmarked position is by definition
// already within [lower, upper], so bounds cannot change.
func (t *Tape) stepLeftNoBounds() {
	if t.offset == 0 {
		t.cur = t.cur.prev
		t.offset = chunkSize - 1
	} else {
		t.offset--
	}
	t.position--
}

func (t *Tape) stepRightNoBounds() {
	if t.offset == chunkSize-1 {
		t.cur = t.cur.next
		t.offset = 0
	} else {
		t.offset++
	}
	t.position++
}
