package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectQueuePreservesOrder(t *testing.T) {
	q := NewEffectQueue(nil)
	q.Emit(ShowCredentialResult{Text: "first"})
	q.Emit(NavigateAuthorized{})

	effects := q.Drain()
	require.Len(t, effects, 2)
	assert.Equal(t, ShowCredentialResult{Text: "first"}, effects[0])
	assert.IsType(t, NavigateAuthorized{}, effects[1])

	assert.Empty(t, q.Drain(), "drain consumes")
}

func TestEffectQueueDropsAfterClose(t *testing.T) {
	var drops int
	q := NewEffectQueue(func() { drops++ })
	q.Emit(NavigateBlocked{Title: "kept"})
	q.Close()
	q.Emit(NavigateAuthorized{})
	q.Emit(NavigateAuthorized{})

	effects := q.Drain()
	require.Len(t, effects, 1, "pre-close effects stay drainable")
	assert.Equal(t, 2, drops)
}

func TestHashPasswordSuffix(t *testing.T) {
	a := HashPasswordSuffix("bank.example", "correcthorse")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashPasswordSuffix("bank.example", "correcthorse"), "deterministic")

	assert.Equal(t, a, HashPasswordSuffix("bank.example", "xxxrse"),
		"only the last three characters contribute")
	assert.NotEqual(t, a, HashPasswordSuffix("other.example", "correcthorse"),
		"domain scopes the hash")

	short := HashPasswordSuffix("bank.example", "ab")
	assert.Len(t, short, 64, "short passwords hash what exists")
	assert.NotEqual(t, short, HashPasswordSuffix("bank.example", ""))
}
