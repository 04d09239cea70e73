package bridge

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Message is what moves between chain instances. The relay network carries
// it opaquely; the receiving bridge authenticates SourceChain and Sender
// before acting on the payload.
type Message struct {
	SourceChain uint64
	DestChain   uint64

	// Sender is the bridge entity that submitted the message on the source
	// chain. The destination checks it against its registered counterpart.
	Sender common.Address

	// Payload is the ABI-encoded TransferPayload.
	Payload []byte

	// ExtraArgs carries the destination chain's message-encoding parameters
	// from the counterpart record.
	ExtraArgs []byte
}

// Relayer is the outbound interface to the external relay network. Delivery
// on the destination chain arrives via Bridge.Receive, invoked by the relay's
// trusted entry point.
type Relayer interface {
	// EstimateFee quotes the relay fee for the message in the fee token.
	EstimateFee(destChain uint64, m Message, feeToken common.Address) (*big.Int, error)

	// Submit hands the message to the relay and returns its identifier.
	Submit(destChain uint64, m Message, feeToken common.Address) (common.Hash, error)
}
