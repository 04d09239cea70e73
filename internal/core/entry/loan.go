package entry

import (
	"errors"
	"math/big"
)

// ErrMalformedLoan is returned when a loan entry is not 96 bytes.
var ErrMalformedLoan = errors.New("malformed loan entry")

// LoanData records one active loan for an (asset, borrower) pair.
// Deleting the entry returns the pair to the no-loan state.
type LoanData struct {
	// Collateral is the asset quantity held in engine custody.
	Collateral *big.Int

	// LoanAmount is the disbursed amount in the loan currency's smallest unit.
	LoanAmount *big.Int

	// LiquidationThreshold is the threshold value recorded at borrow time.
	// A freshly recomputed threshold strictly below this marks the position
	// undercollateralized.
	LiquidationThreshold *big.Int
}

// SerializeLoan encodes a loan entry as three 32-byte words.
func SerializeLoan(l *LoanData) []byte {
	out := make([]byte, 0, 3*amountWidth)
	out = append(out, bigWord(l.Collateral)...)
	out = append(out, bigWord(l.LoanAmount)...)
	out = append(out, bigWord(l.LiquidationThreshold)...)
	return out
}

// ParseLoan decodes a loan entry.
func ParseLoan(data []byte) (*LoanData, error) {
	if len(data) != 3*amountWidth {
		return nil, ErrMalformedLoan
	}
	return &LoanData{
		Collateral:           new(big.Int).SetBytes(data[0:32]),
		LoanAmount:           new(big.Int).SetBytes(data[32:64]),
		LiquidationThreshold: new(big.Int).SetBytes(data[64:96]),
	}, nil
}
