package oracle

import "github.com/ethereum/go-ethereum/common"

// JobRequest describes one off-chain computation job handed to the oracle
// network.
type JobRequest struct {
	// Source is the job script executed off-chain.
	Source string

	// Args are the job's string arguments.
	Args []string

	// SubscriptionID funds the request on the oracle network.
	SubscriptionID uint64

	// GasLimit caps the fulfillment callback.
	GasLimit uint32

	// NetworkID identifies the oracle network instance.
	NetworkID [32]byte
}

// Client is the outbound interface to the oracle network. Fulfillment
// arrives later via Correlator.Fulfill, invoked by the network's trusted
// entry point.
type Client interface {
	SubmitJob(req JobRequest) (common.Hash, error)
}
