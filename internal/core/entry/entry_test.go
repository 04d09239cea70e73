package entry

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountRoundTrip(t *testing.T) {
	v := new(big.Int).Lsh(big.NewInt(1), 200)
	data := SerializeAmount(v)
	require.Len(t, data, 32)

	got, err := ParseAmount(data)
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(got))
}

func TestAmountNilSerializesToZero(t *testing.T) {
	got, err := ParseAmount(SerializeAmount(nil))
	require.NoError(t, err)
	assert.Zero(t, got.Sign())
}

func TestAmountRejectsWrongWidth(t *testing.T) {
	_, err := ParseAmount([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrMalformedAmount)
}

func TestCounterpartRoundTrip(t *testing.T) {
	c := &CounterpartData{
		Address:   common.HexToAddress("0xabc0000000000000000000000000000000000def"),
		ExtraArgs: []byte{0xde, 0xad, 0xbe, 0xef},
	}
	got, err := ParseCounterpart(SerializeCounterpart(c))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCounterpartEmptyExtraArgs(t *testing.T) {
	c := &CounterpartData{Address: common.HexToAddress("0x01")}
	got, err := ParseCounterpart(SerializeCounterpart(c))
	require.NoError(t, err)
	assert.Equal(t, c.Address, got.Address)
	assert.Nil(t, got.ExtraArgs)
}

func TestCounterpartRejectsTruncated(t *testing.T) {
	c := &CounterpartData{Address: common.HexToAddress("0x01"), ExtraArgs: []byte{1, 2, 3}}
	data := SerializeCounterpart(c)

	_, err := ParseCounterpart(data[:len(data)-1])
	assert.ErrorIs(t, err, ErrMalformedCounterpart)

	_, err = ParseCounterpart(data[:10])
	assert.ErrorIs(t, err, ErrMalformedCounterpart)
}

func TestValuationRoundTrip(t *testing.T) {
	v := &ValuationData{
		ListPrice:         big.NewInt(100_000),
		OriginalListPrice: big.NewInt(110_000),
		TaxAssessedValue:  big.NewInt(90_000),
	}
	got, err := ParseValuation(SerializeValuation(v))
	require.NoError(t, err)
	assert.Zero(t, v.ListPrice.Cmp(got.ListPrice))
	assert.Zero(t, v.OriginalListPrice.Cmp(got.OriginalListPrice))
	assert.Zero(t, v.TaxAssessedValue.Cmp(got.TaxAssessedValue))
}

func TestLoanRoundTrip(t *testing.T) {
	l := &LoanData{
		Collateral:           big.NewInt(5),
		LoanAmount:           big.NewInt(15_450_000_000),
		LiquidationThreshold: big.NewInt(19_312_500_000),
	}
	got, err := ParseLoan(SerializeLoan(l))
	require.NoError(t, err)
	assert.Zero(t, l.Collateral.Cmp(got.Collateral))
	assert.Zero(t, l.LoanAmount.Cmp(got.LoanAmount))
	assert.Zero(t, l.LiquidationThreshold.Cmp(got.LiquidationThreshold))
}

func TestPendingRequestRoundTrip(t *testing.T) {
	p := &PendingRequestData{
		RequestID: common.HexToHash("0x0102"),
		AssetID:   big.NewInt(7),
		Recipient: common.HexToAddress("0x0304"),
	}
	got, err := ParsePendingRequest(SerializePendingRequest(p))
	require.NoError(t, err)
	assert.Equal(t, p.RequestID, got.RequestID)
	assert.Zero(t, p.AssetID.Cmp(got.AssetID))
	assert.Equal(t, p.Recipient, got.Recipient)
}

func TestRoleRoundTrip(t *testing.T) {
	addr := common.HexToAddress("0x0a0b")
	got, err := ParseRole(SerializeRole(addr))
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}
