package persistence

import (
	"bytes"
	"testing"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockOrderSortsAndDeduplicates(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	c := uuid.MustParse("00000000-0000-0000-0000-00000000000c")

	lines := []repository.OrderLine{
		{ProductID: c, Quantity: 1},
		{ProductID: a, Quantity: 2},
		{ProductID: c, Quantity: 3},
		{ProductID: b, Quantity: 4},
	}

	got := lockOrder(lines)
	require.Equal(t, []uuid.UUID{a, b, c}, got)
}

func TestLockOrderIsCallerOrderIndependent(t *testing.T) {
	ids := make([]uuid.UUID, 5)
	for i := range ids {
		ids[i] = uuid.New()
	}

	forward := make([]repository.OrderLine, 0, len(ids))
	reverse := make([]repository.OrderLine, 0, len(ids))
	for i, id := range ids {
		forward = append(forward, repository.OrderLine{ProductID: id, Quantity: 1})
		reverse = append(reverse, repository.OrderLine{ProductID: ids[len(ids)-1-i], Quantity: 1})
	}

	assert.Equal(t, lockOrder(forward), lockOrder(reverse))

	sorted := lockOrder(forward)
	for i := 1; i < len(sorted); i++ {
		assert.True(t, bytes.Compare(sorted[i-1][:], sorted[i][:]) < 0)
	}
}
