package entry

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrMalformedPendingRequest is returned when a pending-request entry cannot
// be parsed.
var ErrMalformedPendingRequest = errors.New("malformed pending-request entry")

// PendingRequestData marks one outstanding oracle request. It lives at the
// correlator's in-flight slot for its key and is erased on fulfillment or
// cancellation. A late response whose request id no longer matches this
// marker is dropped.
type PendingRequestData struct {
	RequestID common.Hash

	// AssetID is the asset the response applies to (keyed correlators).
	AssetID *big.Int

	// Recipient is the account the response applies to (strict correlators
	// used for metadata fetches). Zero when unused.
	Recipient common.Address
}

// SerializePendingRequest encodes a pending-request entry.
// Layout: 32-byte request id | 32-byte asset id | 20-byte recipient.
func SerializePendingRequest(p *PendingRequestData) []byte {
	out := make([]byte, 0, common.HashLength+amountWidth+common.AddressLength)
	out = append(out, p.RequestID.Bytes()...)
	out = append(out, bigWord(p.AssetID)...)
	out = append(out, p.Recipient.Bytes()...)
	return out
}

// ParsePendingRequest decodes a pending-request entry.
func ParsePendingRequest(data []byte) (*PendingRequestData, error) {
	if len(data) != common.HashLength+amountWidth+common.AddressLength {
		return nil, ErrMalformedPendingRequest
	}
	return &PendingRequestData{
		RequestID: common.BytesToHash(data[0:32]),
		AssetID:   new(big.Int).SetBytes(data[32:64]),
		Recipient: common.BytesToAddress(data[64:84]),
	}, nil
}
