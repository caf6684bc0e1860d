package vissim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		ids  []int
		want int
	}{
		{nil, 1},
		{[]int{}, 1},
		{[]int{1}, 2},
		{[]int{3, 1, 2}, 4},
		{[]int{10000, 1, 5}, 10001},
		{[]int{-5, -2}, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextID(tt.ids), "%v", tt.ids)
	}
}

func TestDefaultID(t *testing.T) {
	id, err := DefaultID([]int{7, 3, 9})
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	_, err = DefaultID(nil)
	require.ErrorIs(t, err, ErrEmptyCatalog)
}
