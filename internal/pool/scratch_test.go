package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScratchAppendAndSlice(t *testing.T) {
	s := NewScratch[int](4)
	for i := 0; i < 10; i++ {
		s.Append(i)
	}

	require.Equal(t, 10, s.Len())
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, s.Slice())
}

func TestScratchResetKeepsCapacity(t *testing.T) {
	s := NewScratch[int](4)
	for i := 0; i < 8; i++ {
		s.Append(i)
	}
	capBefore := cap(s.buf)

	s.Reset()
	require.Equal(t, 0, s.Len())
	require.Equal(t, capBefore, cap(s.buf))

	s.Append(99)
	require.Equal(t, []int{99}, s.Slice())
}

func TestScratchGrowsByIncrement(t *testing.T) {
	s := NewScratch[int](3)
	require.Equal(t, 0, cap(s.buf))

	s.Append(1)
	require.Equal(t, 3, cap(s.buf))

	s.Append(2)
	s.Append(3)
	require.Equal(t, 3, cap(s.buf))

	s.Append(4)
	require.Equal(t, 6, cap(s.buf))
}
