package entry

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrMalformedAmount is returned when an amount entry is not 32 bytes.
var ErrMalformedAmount = errors.New("malformed amount entry")

// amountWidth is the serialized width of an unsigned 256-bit quantity.
const amountWidth = 32

// SerializeAmount encodes a non-negative quantity as a 32-byte big-endian word.
func SerializeAmount(v *big.Int) []byte {
	return bigWord(v)
}

// bigWord renders a possibly-nil quantity as a 32-byte big-endian word.
func bigWord(v *big.Int) []byte {
	if v == nil {
		v = new(big.Int)
	}
	return common.BigToHash(v).Bytes()
}

// ParseAmount decodes a 32-byte big-endian word into a quantity.
func ParseAmount(data []byte) (*big.Int, error) {
	if len(data) != amountWidth {
		return nil, ErrMalformedAmount
	}
	return new(big.Int).SetBytes(data), nil
}
