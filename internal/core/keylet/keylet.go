// Package keylet derives the addressable location of every chain-state entry.
// A keylet combines an entry type with a 256-bit key obtained by hashing a
// space identifier together with the entry's identifying fields, so distinct
// entry kinds can never collide in the shared key-value store.
package keylet

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
)

// Space identifiers for keylet generation.
const (
	spaceBalance     uint16 = 'b' // per-(asset, owner) balance
	spaceSupply      uint16 = 's' // per-asset total supply
	spaceURI         uint16 = 'u' // per-asset metadata URI
	spaceCounterpart uint16 = 'c' // per-destination-chain counterpart
	spaceValuation   uint16 = 'v' // per-asset valuation record
	spaceLoan        uint16 = 'l' // per-(asset, borrower) loan
	spaceFungible    uint16 = 'f' // per-(token, holder) fungible balance
	spaceRole        uint16 = 'r' // singleton role addresses
	spacePending     uint16 = 'p' // per-correlator in-flight marker
	spaceRequest     uint16 = 'q' // request-id to in-flight slot index
)

// Keylet represents an addressable location in chain state.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	var spaceBytes [2]byte
	binary.BigEndian.PutUint16(spaceBytes[:], space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes[:])
	inputs = append(inputs, data...)

	var out [32]byte
	copy(out[:], crypto.Keccak256(inputs...))
	return out
}

// assetWord renders an asset id as its canonical 32-byte form.
func assetWord(assetID *big.Int) []byte {
	if assetID == nil {
		assetID = new(big.Int)
	}
	return common.BigToHash(assetID).Bytes()
}

// Balance returns the keylet for an owner's balance of one asset.
func Balance(assetID *big.Int, owner common.Address) Keylet {
	return Keylet{
		Type: entry.TypeBalance,
		Key:  indexHash(spaceBalance, assetWord(assetID), owner.Bytes()),
	}
}

// Supply returns the keylet for an asset's total supply on this chain.
func Supply(assetID *big.Int) Keylet {
	return Keylet{
		Type: entry.TypeSupply,
		Key:  indexHash(spaceSupply, assetWord(assetID)),
	}
}

// URI returns the keylet for an asset's metadata URI.
func URI(assetID *big.Int) Keylet {
	return Keylet{
		Type: entry.TypeURI,
		Key:  indexHash(spaceURI, assetWord(assetID)),
	}
}

// Counterpart returns the keylet for the counterpart record of a remote chain.
func Counterpart(chainSelector uint64) Keylet {
	var sel [8]byte
	binary.BigEndian.PutUint64(sel[:], chainSelector)
	return Keylet{
		Type: entry.TypeCounterpart,
		Key:  indexHash(spaceCounterpart, sel[:]),
	}
}

// Valuation returns the keylet for an asset's valuation record.
func Valuation(assetID *big.Int) Keylet {
	return Keylet{
		Type: entry.TypeValuation,
		Key:  indexHash(spaceValuation, assetWord(assetID)),
	}
}

// Loan returns the keylet for the loan record of an (asset, borrower) pair.
func Loan(assetID *big.Int, borrower common.Address) Keylet {
	return Keylet{
		Type: entry.TypeLoan,
		Key:  indexHash(spaceLoan, assetWord(assetID), borrower.Bytes()),
	}
}

// Fungible returns the keylet for a holder's balance of a fungible token.
func Fungible(token, holder common.Address) Keylet {
	return Keylet{
		Type: entry.TypeFungible,
		Key:  indexHash(spaceFungible, token.Bytes(), holder.Bytes()),
	}
}

// Role returns the keylet for a singleton role address.
func Role(name string) Keylet {
	return Keylet{
		Type: entry.TypeRole,
		Key:  indexHash(spaceRole, []byte(name)),
	}
}

// PendingRequest returns the keylet for a correlator's in-flight marker.
// Strict correlators pass a nil key; keyed correlators pass the asset id.
func PendingRequest(correlator common.Address, key *big.Int) Keylet {
	return Keylet{
		Type: entry.TypePendingRequest,
		Key:  indexHash(spacePending, correlator.Bytes(), assetWord(key)),
	}
}

// RequestIndex returns the keylet mapping an issued request id back to the
// correlator slot it belongs to.
func RequestIndex(correlator common.Address, requestID common.Hash) Keylet {
	return Keylet{
		Type: entry.TypeRequestIndex,
		Key:  indexHash(spaceRequest, correlator.Bytes(), requestID.Bytes()),
	}
}
