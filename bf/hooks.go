package bf

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
)

// defaultReadChunk is the number of bytes the default input hook reads
// from standard input per invocation.
const defaultReadChunk = 256

// DefaultInputHook reads up to 256 bytes from os.Stdin and feeds them to
// the interpreter, feeding a zero-length buffer to signal end-of-input. It
// is a convenience default; callers embedding the interpreter in something
// other than a terminal program will typically install their own hook
// instead.
func DefaultInputHook() InputHook {
	reader := bufio.NewReader(os.Stdin)
	return func(it *Interpreter) error {
		buf := make([]byte, defaultReadChunk)
		n, err := reader.Read(buf)
		if n > 0 {
			it.Feed(NewBufferFromBytes(buf[:n]))
		} else {
			it.Feed(NewBuffer(0))
		}
		if err != nil && err != io.EOF {
			return err
		}
		return nil
	}
}

// DefaultOutputHook writes a single byte to os.Stdout.
func DefaultOutputHook() OutputHook {
	w := bufio.NewWriter(os.Stdout)
	return func(it *Interpreter, b byte) error {
		if err := w.WriteByte(b); err != nil {
			return err
		}
		return w.Flush()
	}
}

// DefaultDebugHook writes a bracketed bytewise dump of the tape's visited
// range to os.Stderr, marking the cursor with '<' and '>', plus a
// structured spew.Sdump of the same window for anyone who wants the raw
// Go values. Neither rendering is part of the contract; this is purely a
// reference implementation a caller is free to replace.
func DefaultDebugHook() DebugHook {
	return func(it *Interpreter) error {
		dumpTape(os.Stderr, it.Tape())
		return nil
	}
}

// dumpTape writes the bracketed bytewise dump plus a spew.Sdump of a
// small snapshot struct, replaying the visited range through a bookmark
// round-trip so the cursor ends up exactly where it started, honouring
// the "bookmarks as a scoped, push/pop-paired resource" design note.
func dumpTape(w io.Writer, t *Tape) {
	lower, upper := t.Bounds()
	origin := t.Position()

	t.PushBookmark()
	defer func() {
		t.PopBookmark()
	}()

	// Walk to the lower bound once, then stream cells left to right.
	for t.Position() > lower {
		t.MoveLeftBy(1)
	}

	fmt.Fprint(w, "[")
	cells := make([]int8, 0, upper-lower+1)
	for pos := lower; pos <= upper; pos++ {
		if pos == origin {
			fmt.Fprint(w, "<")
		}
		fmt.Fprintf(w, "%d", t.GetCurrentValue())
		if pos == origin {
			fmt.Fprint(w, ">")
		}
		cells = append(cells, t.GetCurrentValue())
		if pos < upper {
			fmt.Fprint(w, " ")
			t.MoveRightBy(1)
		}
	}
	fmt.Fprintln(w, "]")

	fmt.Fprint(w, spew.Sdump(struct {
		Lower, Upper, Cursor int64
		Cells                []int8
	}{lower, upper, origin, cells}))
}
