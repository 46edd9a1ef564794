package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeLedger_IdempotentRecord(t *testing.T) {
	slot := NewMemorySlot()
	ledger := NewLikeLedger(slot)

	assert.True(t, ledger.CanLike(7))

	ledger.RecordLike(7)
	ledger.RecordLike(7)

	assert.False(t, ledger.CanLike(7))

	raw, ok := slot.Get(LedgerKey)
	require.True(t, ok)
	assert.Equal(t, "7,", raw)
}

func TestLikeLedger_LoadsLegacyEncoding(t *testing.T) {
	slot := NewMemorySlot()
	slot.Set(LedgerKey, "7,42,")

	ledger := NewLikeLedger(slot)

	assert.False(t, ledger.CanLike(7))
	assert.False(t, ledger.CanLike(42))
	assert.True(t, ledger.CanLike(13))

	// A new like extends the stored sequence in order.
	ledger.RecordLike(13)
	raw, _ := slot.Get(LedgerKey)
	assert.Equal(t, "7,42,13,", raw)
}

func TestLikeLedger_SkipsMalformedTokens(t *testing.T) {
	slot := NewMemorySlot()
	slot.Set(LedgerKey, "7,junk,,42,-3,")

	ledger := NewLikeLedger(slot)

	assert.False(t, ledger.CanLike(7))
	assert.False(t, ledger.CanLike(42))
	assert.True(t, ledger.CanLike(3))
}

func TestLikeLedger_TryAcquireOnce(t *testing.T) {
	ledger := NewLikeLedger(NewMemorySlot())

	assert.True(t, ledger.TryAcquire(9))
	assert.False(t, ledger.TryAcquire(9))
	assert.False(t, ledger.CanLike(9))
}
