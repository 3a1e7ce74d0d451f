package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New[int64](3, 1)
	s.Add(2)
	assert.True(t, s.Has(2))
	assert.Equal(t, 3, s.Len())
	s.Delete(3)
	assert.False(t, s.Has(3))
	assert.Equal(t, []int64{1, 2}, Sorted(s))

	var empty Set[int64]
	assert.False(t, empty.Has(1))
	assert.Empty(t, Sorted(empty))
}
