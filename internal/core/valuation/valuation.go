// Package valuation holds the per-asset record of oracle-reported prices.
// Only the oracle correlator writes it, through ApplyResponse; everything
// else reads.
package valuation

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/keylet"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
)

// ErrNoValuation is returned when an asset has no valuation on record.
var ErrNoValuation = errors.New("no valuation on record")

var responseArguments abi.Arguments

func init() {
	uint256Type, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	responseArguments = abi.Arguments{
		{Name: "listPrice", Type: uint256Type},
		{Name: "originalListPrice", Type: uint256Type},
		{Name: "taxAssessedValue", Type: uint256Type},
	}
}

// DecodeResponse decodes an oracle response into its three price fields.
func DecodeResponse(response []byte) (*entry.ValuationData, error) {
	values, err := responseArguments.Unpack(response)
	if err != nil {
		return nil, errors.Wrap(err, "decode valuation response")
	}
	if len(values) != 3 {
		return nil, errors.Errorf("decode valuation response: got %d fields, want 3", len(values))
	}

	v := &entry.ValuationData{}
	var ok bool
	if v.ListPrice, ok = values[0].(*big.Int); !ok {
		return nil, errors.New("decode valuation response: bad listPrice field")
	}
	if v.OriginalListPrice, ok = values[1].(*big.Int); !ok {
		return nil, errors.New("decode valuation response: bad originalListPrice field")
	}
	if v.TaxAssessedValue, ok = values[2].(*big.Int); !ok {
		return nil, errors.New("decode valuation response: bad taxAssessedValue field")
	}
	return v, nil
}

// EncodeResponse encodes the three price fields the way the oracle job
// returns them. Used by tests and the demo harness standing in for the
// oracle network.
func EncodeResponse(v *entry.ValuationData) ([]byte, error) {
	return responseArguments.Pack(v.ListPrice, v.OriginalListPrice, v.TaxAssessedValue)
}

// ApplyResponse is the correlator apply hook: it decodes the response and
// overwrites the asset's valuation record wholesale.
func ApplyResponse(view state.LedgerView, pending *entry.PendingRequestData, response []byte) error {
	v, err := DecodeResponse(response)
	if err != nil {
		return err
	}
	return state.Write(view, keylet.Valuation(pending.AssetID), entry.SerializeValuation(v))
}

// Get returns the asset's valuation record, or ErrNoValuation if absent.
func Get(v state.Reader, assetID *big.Int) (*entry.ValuationData, error) {
	data, err := v.Read(keylet.Valuation(assetID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNoValuation
	}
	return entry.ParseValuation(data)
}
