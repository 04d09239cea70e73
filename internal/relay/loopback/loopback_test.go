package loopback

import (
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/bridge"
)

// recordingEndpoint captures delivered messages.
type recordingEndpoint struct {
	mu       sync.Mutex
	received []bridge.Message
	callers  []common.Address
}

func (e *recordingEndpoint) Receive(caller common.Address, msg bridge.Message) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.received = append(e.received, msg)
	e.callers = append(e.callers, caller)
	return nil
}

func message(dest uint64, payload byte) bridge.Message {
	return bridge.Message{
		SourceChain: 1,
		DestChain:   dest,
		Payload:     []byte{payload},
	}
}

func TestSubmitAndDeliver(t *testing.T) {
	r := New()
	ep := &recordingEndpoint{}
	r.Register(2, ep, big.NewInt(25))

	fee, err := r.EstimateFee(2, message(2, 1), common.Address{})
	require.NoError(t, err)
	assert.Equal(t, int64(25), fee.Int64())

	id, err := r.Submit(2, message(2, 1), common.Address{})
	require.NoError(t, err)
	assert.NotEqual(t, common.Hash{}, id)
	assert.Equal(t, 1, r.Pending())

	require.NoError(t, r.Deliver(0))
	assert.Equal(t, 0, r.Pending())
	require.Len(t, ep.received, 1)
	assert.Equal(t, []byte{1}, ep.received[0].Payload)

	// Deliveries arrive under the relay's identity.
	assert.Equal(t, r.Identity(), ep.callers[0])
}

func TestUnknownChain(t *testing.T) {
	r := New()

	_, err := r.EstimateFee(9, message(9, 1), common.Address{})
	assert.ErrorIs(t, err, ErrUnknownChain)

	_, err = r.Submit(9, message(9, 1), common.Address{})
	assert.ErrorIs(t, err, ErrUnknownChain)
}

func TestMessageIDsAreUnique(t *testing.T) {
	r := New()
	r.Register(2, &recordingEndpoint{}, big.NewInt(1))

	seen := map[common.Hash]bool{}
	for i := 0; i < 32; i++ {
		id, err := r.Submit(2, message(2, byte(i)), common.Address{})
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestOutOfOrderDelivery(t *testing.T) {
	r := New()
	ep := &recordingEndpoint{}
	r.Register(2, ep, big.NewInt(1))

	for i := byte(1); i <= 3; i++ {
		_, err := r.Submit(2, message(2, i), common.Address{})
		require.NoError(t, err)
	}

	require.NoError(t, r.Deliver(2))
	require.NoError(t, r.Deliver(1))
	require.NoError(t, r.Deliver(0))

	assert.Equal(t, []byte{3}, ep.received[0].Payload)
	assert.Equal(t, []byte{1}, ep.received[1].Payload)
	assert.Equal(t, []byte{2}, ep.received[2].Payload)
}

func TestDrop(t *testing.T) {
	r := New()
	ep := &recordingEndpoint{}
	r.Register(2, ep, big.NewInt(1))

	_, err := r.Submit(2, message(2, 1), common.Address{})
	require.NoError(t, err)
	_, err = r.Submit(2, message(2, 2), common.Address{})
	require.NoError(t, err)

	require.NoError(t, r.Drop(0))
	require.NoError(t, r.DeliverAll())

	require.Len(t, ep.received, 1)
	assert.Equal(t, []byte{2}, ep.received[0].Payload)

	assert.Error(t, r.Drop(0))
	assert.Error(t, r.Deliver(0))
}
