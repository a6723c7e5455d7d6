package cellset

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type index uint64

func TestAddContains(t *testing.T) {
	s := New[index]()
	assert.True(t, s.IsEmpty())

	assert.True(t, s.Add(0x8928308280fffff))
	assert.False(t, s.Add(0x8928308280fffff))
	assert.True(t, s.Add(0x85283473fffffff))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(0x85283473fffffff))
	assert.False(t, s.Contains(0x85283477fffffff))

	s.Remove(0x85283473fffffff)
	assert.Equal(t, 1, s.Len())
}

func TestSliceSorted(t *testing.T) {
	s := Of[index](30, 10, 20, 10)
	assert.Equal(t, []index{10, 20, 30}, s.Slice())
	assert.Equal(t, []index{10, 20, 30}, slices.Collect(s.All()))
}

func TestUnion(t *testing.T) {
	a := Of[index](1, 2)
	a.Union(Of[index](2, 3))
	assert.Equal(t, []index{1, 2, 3}, a.Slice())
}

func TestSerialization(t *testing.T) {
	s := Of[index](0x8928308280fffff, 0x8928308283bffff, 0x85283473fffffff)

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	got := Of[index](42)
	_, err = got.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Slice(), got.Slice())
}
