package bf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadString(t *testing.T, src string) *Program {
	t.Helper()
	p, err := Load(NewBufferFromBytes([]byte(src)))
	require.NoError(t, err)
	return p
}

func TestLoadEmptyProgramIsSingleNop(t *testing.T) {
	p, err := Load(NewBuffer(0))
	require.NoError(t, err)
	root := p.Root()
	assert.Equal(t, Nop, root.Kind())
	_, hasNext := root.Next()
	assert.False(t, hasNext)
	assert.Equal(t, 0, p.EmbeddedInput().Size())
}

func TestLoadUnbalancedOpener(t *testing.T) {
	_, err := Load(NewBufferFromBytes([]byte("[")))
	assert.True(t, errors.Is(err, ErrUnbalancedBrackets))
}

func TestLoadUnbalancedCloser(t *testing.T) {
	_, err := Load(NewBufferFromBytes([]byte("]")))
	assert.True(t, errors.Is(err, ErrUnbalancedBrackets))
}

func TestLoadRunFolding(t *testing.T) {
	p := loadString(t, "+++.-----")
	root := p.Root()
	assert.Equal(t, Increase, root.Kind())
	assert.Equal(t, 3, root.Quantity())

	n1, ok := root.Next()
	require.True(t, ok)
	assert.Equal(t, Print, n1.Kind())
	assert.Equal(t, 1, n1.Quantity())

	n2, ok := n1.Next()
	require.True(t, ok)
	assert.Equal(t, Decrease, n2.Kind())
	assert.Equal(t, 5, n2.Quantity())

	_, ok = n2.Next()
	assert.False(t, ok)
}

func TestLoadCommentSplitsRun(t *testing.T) {
	// a comment byte between two '+' splits the run into two instructions.
	p := loadString(t, "+x+")
	root := p.Root()
	assert.Equal(t, Increase, root.Kind())
	assert.Equal(t, 1, root.Quantity())
	n1, ok := root.Next()
	require.True(t, ok)
	assert.Equal(t, Increase, n1.Kind())
	assert.Equal(t, 1, n1.Quantity())
	_, ok = n1.Next()
	assert.False(t, ok)
}

func TestLoadAdjacentLoopDelimitersNotFolded(t *testing.T) {
	p := loadString(t, "[[]]")
	outer := p.Root()
	assert.Equal(t, LoopBegin, outer.Kind())
	assert.Equal(t, 1, outer.Quantity())
	_, hasNext := outer.Next()
	assert.False(t, hasNext)

	inner, ok := outer.Body()
	require.True(t, ok)
	assert.Equal(t, LoopBegin, inner.Kind())

	innerBody, ok := inner.Body()
	require.True(t, ok)
	assert.Equal(t, LoopEnd, innerBody.Kind())

	afterInner, ok := inner.Next()
	require.True(t, ok)
	assert.Equal(t, LoopEnd, afterInner.Kind())
}

func TestLoadEmptyLoopBodyIsJustLoopEnd(t *testing.T) {
	p := loadString(t, "[]")
	root := p.Root()
	assert.Equal(t, LoopBegin, root.Kind())
	body, ok := root.Body()
	require.True(t, ok)
	assert.Equal(t, LoopEnd, body.Kind())
}

func TestLoadEmbeddedInput(t *testing.T) {
	p := loadString(t, ",[.,]!hi")
	assert.Equal(t, 2, p.EmbeddedInput().Size())
	assert.Equal(t, []byte("hi"), p.EmbeddedInput().Bytes())
}

func TestLoadNoEmbeddedInputIsZeroLength(t *testing.T) {
	p := loadString(t, "+-")
	assert.Equal(t, 0, p.EmbeddedInput().Size())
}

func TestLoadBracketsAfterSeparatorIgnored(t *testing.T) {
	p, err := Load(NewBufferFromBytes([]byte("+!["))) // stray '[' is input, not code
	require.NoError(t, err)
	assert.Equal(t, []byte("["), p.EmbeddedInput().Bytes())
}

func TestLoadSkipsNonOperatorBytes(t *testing.T) {
	p := loadString(t, "hello+world")
	root := p.Root()
	assert.Equal(t, Increase, root.Kind())
	assert.Equal(t, 1, root.Quantity())
	_, hasNext := root.Next()
	assert.False(t, hasNext)
}

func TestLoadGlyphMapping(t *testing.T) {
	p := loadString(t, "<>+-,.#")
	kinds := []Kind{MoveLeft, MoveRight, Increase, Decrease, Read, Print, Debug}
	ins := p.Root()
	for i, want := range kinds {
		assert.Equal(t, want, ins.Kind(), "instruction %d", i)
		assert.Equal(t, 1, ins.Quantity())
		next, ok := ins.Next()
		if i < len(kinds)-1 {
			require.True(t, ok)
			ins = next
		} else {
			assert.False(t, ok)
		}
	}
}
