package entry

import (
	"errors"
	"math/big"
)

// ErrMalformedValuation is returned when a valuation entry is not 96 bytes.
var ErrMalformedValuation = errors.New("malformed valuation entry")

// ValuationData holds the oracle-reported price fields for one asset.
// The record is overwritten wholesale on each successful fulfillment and is
// stale until the next refresh.
type ValuationData struct {
	ListPrice         *big.Int
	OriginalListPrice *big.Int
	TaxAssessedValue  *big.Int
}

// SerializeValuation encodes a valuation entry as three 32-byte words.
func SerializeValuation(v *ValuationData) []byte {
	out := make([]byte, 0, 3*amountWidth)
	out = append(out, bigWord(v.ListPrice)...)
	out = append(out, bigWord(v.OriginalListPrice)...)
	out = append(out, bigWord(v.TaxAssessedValue)...)
	return out
}

// ParseValuation decodes a valuation entry.
func ParseValuation(data []byte) (*ValuationData, error) {
	if len(data) != 3*amountWidth {
		return nil, ErrMalformedValuation
	}
	return &ValuationData{
		ListPrice:         new(big.Int).SetBytes(data[0:32]),
		OriginalListPrice: new(big.Int).SetBytes(data[32:64]),
		TaxAssessedValue:  new(big.Int).SetBytes(data[64:96]),
	}, nil
}
