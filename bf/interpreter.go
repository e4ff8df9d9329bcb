package bf

import "github.com/golang/glog"

// InputHook is invoked when the interpreter needs more input than is
// currently buffered. Implementations should call Feed on it with newly
// available bytes, or with a zero-length buffer to signal exhaustion, and
// return any error encountered acquiring the data. There is no explicit
// user-data parameter, the way the original C API carried one — a Go hook
// closes over whatever state it needs, which is the idiom every hook in
// this package follows.
type InputHook func(it *Interpreter) error

// OutputHook is invoked once per byte the program emits via a Print
// instruction.
type OutputHook func(it *Interpreter, b byte) error

// DebugHook is invoked once per '#' executed (a folded Debug instruction
// of quantity n invokes it n times), only when the interpreter's
// Configuration has DebugEnabled set.
type DebugHook func(it *Interpreter) error

// Interpreter walks a Program's instruction tree against a Tape, driving
// I/O through three injectable hooks. Program, Tape, and Configuration are
// shared by reference with whatever else holds them; an Interpreter does
// not copy them on Set.
type Interpreter struct {
	program *Program
	tape    *Tape
	config  Configuration

	inputHook  InputHook
	outputHook OutputHook
	debugHook  DebugHook

	inputBuf         *Buffer
	inputOffset      int
	endOfInput       bool
	hadEmbeddedInput bool

	current    Instruction
	hasCurrent bool
	stack      []Instruction
	finished   bool
}

// NewInterpreter returns an Interpreter with a freshly allocated default
// program (a single Nop, no embedded input), a fresh Tape, and the default
// Configuration. No hooks are installed.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		program: newEmptyProgram(),
		tape:    NewTape(),
		config:  DefaultConfiguration(),
	}
}

// Program returns the interpreter's current program.
func (it *Interpreter) Program() *Program { return it.program }

// SetProgram replaces the interpreter's program. Ownership is shared by
// reference; the caller may keep using p elsewhere.
func (it *Interpreter) SetProgram(p *Program) { it.program = p }

// Tape returns the interpreter's current tape.
func (it *Interpreter) Tape() *Tape { return it.tape }

// SetTape replaces the interpreter's tape.
func (it *Interpreter) SetTape(t *Tape) { it.tape = t }

// Configuration returns the interpreter's current configuration.
func (it *Interpreter) Configuration() Configuration { return it.config }

// SetConfiguration replaces the interpreter's configuration. Mutating it
// while a Run is in progress is outside the contract.
func (it *Interpreter) SetConfiguration(c Configuration) { it.config = c }

// SetInputHook installs the hook invoked when more input is needed.
func (it *Interpreter) SetInputHook(h InputHook) { it.inputHook = h }

// SetOutputHook installs the hook invoked once per emitted byte.
func (it *Interpreter) SetOutputHook(h OutputHook) { it.outputHook = h }

// SetDebugHook installs the hook invoked once per '#' executed, when
// debugging is enabled.
func (it *Interpreter) SetDebugHook(h DebugHook) { it.debugHook = h }

// Feed replaces the current runtime input buffer and resets its read
// cursor; the end-of-input flag is cleared. Input hooks call this to
// supply freshly read bytes (or a zero-length buffer to signal
// exhaustion). A buffer fed before Run has no effect on that run: Run
// (through Reset) replaces it with the program's embedded input.
func (it *Interpreter) Feed(buf *Buffer) {
	it.inputBuf = buf
	it.inputOffset = 0
	it.endOfInput = false
	it.hadEmbeddedInput = false
}

// resetRunState (re)initialises the per-run input cursor from the
// program's embedded input. The tape is deliberately left untouched: it
// persists across runs.
func (it *Interpreter) resetRunState() {
	it.inputBuf = it.program.EmbeddedInput()
	it.inputOffset = 0
	it.endOfInput = false
	it.hadEmbeddedInput = it.inputBuf.Size() > 0
}

// Reset rewinds the interpreter to the start of its current program
// without touching the tape, which persists across runs. It is exposed
// mainly for single-stepping callers such as the tui debugger; Run calls
// it automatically.
func (it *Interpreter) Reset() {
	it.resetRunState()
	it.current, it.hasCurrent = it.program.Root(), true
	it.stack = nil
	it.finished = false
}

// Done reports whether the current run has finished (successfully or by
// error) and there is no more instruction to Step through.
func (it *Interpreter) Done() bool {
	return it.finished
}

// Current returns the instruction Step will execute next, and whether one
// exists. Mainly useful for an interactive debugger's display.
func (it *Interpreter) Current() (Instruction, bool) {
	return it.current, it.hasCurrent
}

// Run walks the program's instruction tree to completion or failure. The
// tape is mutated in place; a failed run leaves it in whatever state the
// partial execution produced.
func (it *Interpreter) Run() error {
	it.Reset()
	for !it.finished {
		if err := it.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes exactly one instruction of the tree-walk's explicit
// dispatch and advances the interpreter's internal cursor. Callers that
// want single-stepping (the tui debugger) call Reset once, then Step
// repeatedly until Done reports true, checking the returned error after
// every call.
func (it *Interpreter) Step() error {
	if !it.hasCurrent {
		if len(it.stack) != 0 {
			it.finished = true
			return ErrUnbalancedBrackets
		}
		it.finished = true
		return nil
	}

	current := it.current
	switch current.Kind() {
	case Nop:
		it.current, it.hasCurrent = current.Next()

	case MoveLeft:
		it.tape.MoveLeftBy(current.Quantity())
		it.current, it.hasCurrent = current.Next()

	case MoveRight:
		it.tape.MoveRightBy(current.Quantity())
		it.current, it.hasCurrent = current.Next()

	case Increase:
		it.tape.IncreaseCurrentValueBy(int8(current.Quantity()))
		it.current, it.hasCurrent = current.Next()

	case Decrease:
		it.tape.DecreaseCurrentValueBy(int8(current.Quantity()))
		it.current, it.hasCurrent = current.Next()

	case LoopBegin:
		if it.tape.GetCurrentValue() != 0 {
			glog.V(2).Infof("bf: entering loop at nonzero cell")
			it.stack = append(it.stack, current)
			it.current, it.hasCurrent = current.Body()
		} else {
			it.current, it.hasCurrent = current.Next()
		}

	case LoopEnd:
		if len(it.stack) == 0 {
			it.finished = true
			return ErrUnbalancedBrackets
		}
		n := len(it.stack) - 1
		it.current, it.stack = it.stack[n], it.stack[:n]
		it.hasCurrent = true

	case Read:
		if err := it.execRead(current.Quantity()); err != nil {
			it.finished = true
			return err
		}
		it.current, it.hasCurrent = current.Next()

	case Print:
		if err := it.execPrint(current.Quantity()); err != nil {
			it.finished = true
			return err
		}
		it.current, it.hasCurrent = current.Next()

	case Debug:
		if err := it.execDebug(current.Quantity()); err != nil {
			it.finished = true
			return err
		}
		it.current, it.hasCurrent = current.Next()
	}

	if !it.hasCurrent && len(it.stack) == 0 {
		it.finished = true
	}
	return nil
}

// execRead performs the read protocol quantity times, storing only the
// final observed value.
func (it *Interpreter) execRead(quantity int) error {
	var value int8
	var isEOF bool
	for i := 0; i < quantity; i++ {
		v, eof, err := it.readOne()
		if err != nil {
			return err
		}
		value, isEOF = v, eof
	}
	if isEOF {
		switch it.config.OnEndOfInput {
		case StoreZero:
			it.tape.SetCurrentValue(0)
		case StoreEof:
			it.tape.SetCurrentValue(-1)
		case DoNothing:
			// leave the cell untouched
		}
		return nil
	}
	it.tape.SetCurrentValue(value)
	return nil
}

// readOne performs a single read iteration of the input protocol: drain
// any buffered input first, then fall back to the input hook, latching
// end-of-input once observed so later reads in the same quantity don't
// re-invoke a hook that has already signalled exhaustion.
func (it *Interpreter) readOne() (int8, bool, error) {
	if it.endOfInput {
		return 0, true, nil
	}
	if it.inputOffset < it.inputBuf.Size() {
		v := it.inputBuf.GetValue(it.inputOffset)
		it.inputOffset++
		return v, false, nil
	}
	if it.hadEmbeddedInput {
		it.endOfInput = true
		return 0, true, nil
	}
	if it.inputHook == nil {
		it.endOfInput = true
		return 0, true, nil
	}
	if err := it.inputHook(it); err != nil {
		glog.V(1).Infof("bf: input hook failed: %v", err)
		return 0, false, NewIOError(err)
	}
	if it.inputOffset < it.inputBuf.Size() {
		v := it.inputBuf.GetValue(it.inputOffset)
		it.inputOffset++
		return v, false, nil
	}
	it.endOfInput = true
	return 0, true, nil
}

// execPrint invokes the output hook quantity times, aborting on the first
// failure. A nil hook makes Print a no-op.
func (it *Interpreter) execPrint(quantity int) error {
	if it.outputHook == nil {
		return nil
	}
	for i := 0; i < quantity; i++ {
		b := byte(it.tape.GetCurrentValue())
		if err := it.outputHook(it, b); err != nil {
			glog.V(1).Infof("bf: output hook failed: %v", err)
			return NewIOError(err)
		}
	}
	return nil
}

// execDebug invokes the debug hook quantity times when debugging is
// enabled. A nil hook, or DebugEnabled == false, makes Debug a no-op.
func (it *Interpreter) execDebug(quantity int) error {
	if !it.config.DebugEnabled || it.debugHook == nil {
		return nil
	}
	for i := 0; i < quantity; i++ {
		if err := it.debugHook(it); err != nil {
			glog.V(1).Infof("bf: debug hook failed: %v", err)
			return NewIOError(err)
		}
	}
	return nil
}
