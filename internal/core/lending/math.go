package lending

import (
	"math/big"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
)

// Valuation weights. The weighted average biases toward the current list
// price; the divisor is the weight sum so the result stays in price units.
const (
	listPriceWeight         = 50
	originalListPriceWeight = 30
	taxAssessedValueWeight  = 20
	weightSum               = listPriceWeight + originalListPriceWeight + taxAssessedValueWeight
)

// All division here truncates, which rounds every derived value down and
// therefore in the lender's favor.

// weightedValuation returns the weighted USD valuation of an asset.
func weightedValuation(v *entry.ValuationData) *big.Int {
	sum := new(big.Int).Mul(v.ListPrice, big.NewInt(listPriceWeight))
	sum.Add(sum, new(big.Int).Mul(v.OriginalListPrice, big.NewInt(originalListPriceWeight)))
	sum.Add(sum, new(big.Int).Mul(v.TaxAssessedValue, big.NewInt(taxAssessedValueWeight)))
	return sum.Quo(sum, big.NewInt(weightSum))
}

// toLoanCurrency converts a USD value into the loan currency's smallest
// unit at the given feed price (price of one whole loan-currency unit in
// USD, scaled by 10^feedDecimals).
func toLoanCurrency(usd, price *big.Int, loanDecimals, feedDecimals uint8) *big.Int {
	out := new(big.Int).Set(usd)
	out.Mul(out, pow10(loanDecimals))
	out.Mul(out, pow10(feedDecimals))
	return out.Quo(out, price)
}

// applyPercent returns value × percent / 100, truncating.
func applyPercent(value *big.Int, percent uint64) *big.Int {
	out := new(big.Int).Mul(value, new(big.Int).SetUint64(percent))
	return out.Quo(out, big.NewInt(100))
}

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
