// Package loopback is an in-process relay network connecting bridge
// instances of different chains. It queues submitted messages and delivers
// them on demand, in any order, or drops them — which is exactly the
// at-least-once, unordered service the real relay is assumed to provide.
package loopback

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/bridge"
)

// ErrUnknownChain is returned for a destination with no registered endpoint.
var ErrUnknownChain = errors.New("unknown destination chain")

// Endpoint is the destination side of a chain: the bridge's inbound surface.
type Endpoint interface {
	Receive(caller common.Address, msg bridge.Message) error
}

type delivery struct {
	id  common.Hash
	msg bridge.Message
}

// Relay is the loopback relay network.
type Relay struct {
	mu        sync.Mutex
	identity  common.Address
	endpoints map[uint64]Endpoint
	fees      map[uint64]*big.Int
	queue     []delivery
}

// New creates a loopback relay. Its identity is the trusted entry-point
// address bridges must be configured with.
func New() *Relay {
	return &Relay{
		identity:  common.BytesToAddress(crypto.Keccak256([]byte("loopback-relay"))[12:]),
		endpoints: make(map[uint64]Endpoint),
		fees:      make(map[uint64]*big.Int),
	}
}

// Identity returns the relay's trusted entry-point address.
func (r *Relay) Identity() common.Address { return r.identity }

// Register connects a chain's endpoint and sets its flat delivery fee.
func (r *Relay) Register(chainSelector uint64, ep Endpoint, fee *big.Int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpoints[chainSelector] = ep
	r.fees[chainSelector] = new(big.Int).Set(fee)
}

// EstimateFee quotes the flat fee for the destination chain.
func (r *Relay) EstimateFee(destChain uint64, m bridge.Message, feeToken common.Address) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fee, ok := r.fees[destChain]
	if !ok {
		return nil, ErrUnknownChain
	}
	return new(big.Int).Set(fee), nil
}

// Submit queues a message for delivery and returns its identifier.
func (r *Relay) Submit(destChain uint64, m bridge.Message, feeToken common.Address) (common.Hash, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.endpoints[destChain]; !ok {
		return common.Hash{}, ErrUnknownChain
	}

	u := uuid.New()
	id := common.BytesToHash(crypto.Keccak256(u[:]))
	r.queue = append(r.queue, delivery{id: id, msg: m})
	return id, nil
}

// Pending returns the number of queued deliveries.
func (r *Relay) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Deliver pops the i-th queued message and invokes the destination
// endpoint under the relay's identity. Out-of-order delivery is just
// Deliver with i > 0.
func (r *Relay) Deliver(i int) error {
	r.mu.Lock()
	if i < 0 || i >= len(r.queue) {
		r.mu.Unlock()
		return errors.Errorf("no queued delivery at index %d", i)
	}
	d := r.queue[i]
	r.queue = append(r.queue[:i], r.queue[i+1:]...)
	ep := r.endpoints[d.msg.DestChain]
	r.mu.Unlock()

	if ep == nil {
		return ErrUnknownChain
	}
	return ep.Receive(r.identity, d.msg)
}

// DeliverAll delivers every queued message in submission order.
func (r *Relay) DeliverAll() error {
	for r.Pending() > 0 {
		if err := r.Deliver(0); err != nil {
			return err
		}
	}
	return nil
}

// Drop discards the i-th queued message, simulating a permanently lost
// delivery. The source-side burn it carried stays executed.
func (r *Relay) Drop(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.queue) {
		return errors.Errorf("no queued delivery at index %d", i)
	}
	r.queue = append(r.queue[:i], r.queue[i+1:]...)
	return nil
}
