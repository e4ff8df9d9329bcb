package bf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferGetSetValue(t *testing.T) {
	b := NewBuffer(4)
	assert.Equal(t, 4, b.Size())
	for i := 0; i < 4; i++ {
		assert.Equal(t, int8(0), b.GetValue(i))
	}
	b.SetValue(2, 42)
	assert.Equal(t, int8(42), b.GetValue(2))
	assert.Equal(t, int8(0), b.GetValue(0))
	assert.Equal(t, int8(0), b.GetValue(3))
}

func TestBufferZeroSize(t *testing.T) {
	b := NewBuffer(0)
	assert.Equal(t, 0, b.Size())
}

func TestBufferOutOfRangePanics(t *testing.T) {
	b := NewBuffer(2)
	assert.Panics(t, func() { b.GetValue(2) })
	assert.Panics(t, func() { b.GetValue(-1) })
	assert.Panics(t, func() { b.SetValue(2, 1) })
}

func TestBufferSetContents(t *testing.T) {
	b := NewBuffer(3)
	b.SetContents([]int8{1, 2, 3})
	assert.Equal(t, int8(1), b.GetValue(0))
	assert.Equal(t, int8(3), b.GetValue(2))
	assert.Panics(t, func() { b.SetContents([]int8{1, 2}) })
}

func TestNewBufferFromBytes(t *testing.T) {
	b := NewBufferFromBytes([]byte("hi"))
	require.Equal(t, 2, b.Size())
	assert.Equal(t, []byte("hi"), b.Bytes())
}
