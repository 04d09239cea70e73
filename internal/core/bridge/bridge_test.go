package bridge

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/fungible"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/ledger"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/storage/database"
)

var (
	owner      = common.HexToAddress("0x0e")
	alice      = common.HexToAddress("0xa1")
	self       = common.HexToAddress("0x5e")
	remote     = common.HexToAddress("0x4e")
	relayEntry = common.HexToAddress("0x4a")
	feeToken   = common.HexToAddress("0xfe")
)

// stubRelayer records submissions and quotes a fixed fee.
type stubRelayer struct {
	fee       int64
	submitted []Message
	submitErr error
}

func (r *stubRelayer) EstimateFee(destChain uint64, m Message, feeToken common.Address) (*big.Int, error) {
	return big.NewInt(r.fee), nil
}

func (r *stubRelayer) Submit(destChain uint64, m Message, feeToken common.Address) (common.Hash, error) {
	if r.submitErr != nil {
		return common.Hash{}, r.submitErr
	}
	r.submitted = append(r.submitted, m)
	return common.HexToHash("0x01"), nil
}

func newTestBridge(t *testing.T) (*Bridge, *stubRelayer, *state.Store) {
	t.Helper()
	s, err := state.NewStore(database.NewMemoryDB())
	require.NoError(t, err)

	view := s.View()
	require.NoError(t, state.SetRole(view, entry.RoleOwner, owner))
	require.NoError(t, view.Commit())

	relay := &stubRelayer{fee: 25}
	b := New(s, relay, self, relayEntry, 1, zaptest.NewLogger(t))
	return b, relay, s
}

func mintFor(t *testing.T, s *state.Store, who common.Address, assetID, quantity int64, uri string) {
	t.Helper()
	view := s.View()
	require.NoError(t, ledger.Mint(view, who, big.NewInt(assetID), big.NewInt(quantity), uri))
	require.NoError(t, view.Commit())
}

func TestTransferPayloadRoundTrip(t *testing.T) {
	p := &TransferPayload{
		From:     alice,
		To:       owner,
		AssetID:  big.NewInt(7),
		Quantity: big.NewInt(5),
		AuxData:  []byte{1, 2, 3},
		AssetURI: "ipfs://asset-7",
	}
	data, err := EncodeTransfer(p)
	require.NoError(t, err)

	got, err := DecodeTransfer(data)
	require.NoError(t, err)
	assert.Equal(t, p.From, got.From)
	assert.Equal(t, p.To, got.To)
	assert.Zero(t, p.AssetID.Cmp(got.AssetID))
	assert.Zero(t, p.Quantity.Cmp(got.Quantity))
	assert.Equal(t, p.AuxData, got.AuxData)
	assert.Equal(t, p.AssetURI, got.AssetURI)
}

func TestDecodeTransferRejectsGarbage(t *testing.T) {
	_, err := DecodeTransfer([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestEnableChainGating(t *testing.T) {
	b, _, _ := newTestBridge(t)

	assert.ErrorIs(t, b.EnableChain(alice, 2, remote, nil), state.ErrUnauthorized)
	assert.ErrorIs(t, b.EnableChain(owner, 1, remote, nil), ErrSelfChain)
	require.NoError(t, b.EnableChain(owner, 2, remote, []byte{0xaa}))

	// Re-enabling overwrites the prior record.
	require.NoError(t, b.EnableChain(owner, 2, relayEntry, nil))
}

func TestDisableChain(t *testing.T) {
	b, _, _ := newTestBridge(t)

	assert.ErrorIs(t, b.DisableChain(owner, 2), ErrChainNotEnabled)
	require.NoError(t, b.EnableChain(owner, 2, remote, nil))
	assert.ErrorIs(t, b.DisableChain(alice, 2), state.ErrUnauthorized)
	require.NoError(t, b.DisableChain(owner, 2))

	_, err := b.TransferCrossChain(alice, alice, big.NewInt(1), big.NewInt(1), nil, 2, feeToken)
	assert.ErrorIs(t, err, ErrChainNotEnabled)
}

func TestFundFeesGating(t *testing.T) {
	b, _, _ := newTestBridge(t)

	assert.ErrorIs(t, b.FundFees(alice, feeToken, big.NewInt(100)), state.ErrUnauthorized)
	require.NoError(t, b.FundFees(owner, feeToken, big.NewInt(100)))

	bal, err := b.FeeBalance(feeToken)
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal.Int64())
}

func TestTransferCrossChainBurnsAndSubmits(t *testing.T) {
	b, relay, s := newTestBridge(t)
	require.NoError(t, b.EnableChain(owner, 2, remote, []byte{0xbb}))
	require.NoError(t, b.FundFees(owner, feeToken, big.NewInt(100)))
	mintFor(t, s, alice, 1, 20, "ipfs://asset-1")

	_, err := b.TransferCrossChain(alice, alice, big.NewInt(1), big.NewInt(5), nil, 2, feeToken)
	require.NoError(t, err)

	bal, err := ledger.BalanceOf(s, big.NewInt(1), alice)
	require.NoError(t, err)
	assert.Equal(t, int64(15), bal.Int64())

	sup, err := ledger.TotalSupply(s, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, int64(15), sup.Int64())

	feeBal, err := b.FeeBalance(feeToken)
	require.NoError(t, err)
	assert.Equal(t, int64(75), feeBal.Int64())

	require.Len(t, relay.submitted, 1)
	msg := relay.submitted[0]
	assert.Equal(t, uint64(1), msg.SourceChain)
	assert.Equal(t, uint64(2), msg.DestChain)
	assert.Equal(t, self, msg.Sender)
	assert.Equal(t, []byte{0xbb}, msg.ExtraArgs)

	p, err := DecodeTransfer(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://asset-1", p.AssetURI)
	assert.Equal(t, int64(5), p.Quantity.Int64())
}

func TestTransferCrossChainInsufficientFee(t *testing.T) {
	b, _, s := newTestBridge(t)
	require.NoError(t, b.EnableChain(owner, 2, remote, nil))
	require.NoError(t, b.FundFees(owner, feeToken, big.NewInt(10)))
	mintFor(t, s, alice, 1, 20, "")

	_, err := b.TransferCrossChain(alice, alice, big.NewInt(1), big.NewInt(5), nil, 2, feeToken)
	assert.ErrorIs(t, err, ErrInsufficientFeeBalance)

	// Nothing was committed; the burn did not happen.
	bal, err := ledger.BalanceOf(s, big.NewInt(1), alice)
	require.NoError(t, err)
	assert.Equal(t, int64(20), bal.Int64())
}

func TestTransferCrossChainSubmitFailureLeavesBurnCommitted(t *testing.T) {
	b, relay, s := newTestBridge(t)
	relay.submitErr = errors.New("relay down")
	require.NoError(t, b.EnableChain(owner, 2, remote, nil))
	require.NoError(t, b.FundFees(owner, feeToken, big.NewInt(100)))
	mintFor(t, s, alice, 1, 20, "")

	_, err := b.TransferCrossChain(alice, alice, big.NewInt(1), big.NewInt(5), nil, 2, feeToken)
	require.Error(t, err)

	// The burn and fee debit are durable; the transfer is lost in transit.
	bal, err := ledger.BalanceOf(s, big.NewInt(1), alice)
	require.NoError(t, err)
	assert.Equal(t, int64(15), bal.Int64())

	sup, err := ledger.TotalSupply(s, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, int64(15), sup.Int64())

	feeBal, err := b.FeeBalance(feeToken)
	require.NoError(t, err)
	assert.Equal(t, int64(75), feeBal.Int64())

	assert.Empty(t, relay.submitted)
}

// faultDB fails the next atomic batch and then recovers.
type faultDB struct {
	database.DB
	failNext bool
}

func (d *faultDB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if d.failNext {
		d.failNext = false
		return errors.New("batch write failed")
	}
	return d.DB.Batch(ctx, ops)
}

func TestTransferCrossChainCommitFailureSubmitsNothing(t *testing.T) {
	db := &faultDB{DB: database.NewMemoryDB()}
	s, err := state.NewStore(db)
	require.NoError(t, err)

	view := s.View()
	require.NoError(t, state.SetRole(view, entry.RoleOwner, owner))
	require.NoError(t, view.Commit())

	relay := &stubRelayer{fee: 25}
	b := New(s, relay, self, relayEntry, 1, zaptest.NewLogger(t))
	require.NoError(t, b.EnableChain(owner, 2, remote, nil))
	require.NoError(t, b.FundFees(owner, feeToken, big.NewInt(100)))
	mintFor(t, s, alice, 1, 20, "")

	db.failNext = true
	_, err = b.TransferCrossChain(alice, alice, big.NewInt(1), big.NewInt(5), nil, 2, feeToken)
	require.Error(t, err)

	// No message may reach the relay without a committed burn behind it.
	assert.Empty(t, relay.submitted)

	bal, err := ledger.BalanceOf(s, big.NewInt(1), alice)
	require.NoError(t, err)
	assert.Equal(t, int64(20), bal.Int64())

	sup, err := ledger.TotalSupply(s, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, int64(20), sup.Int64())

	feeBal, err := b.FeeBalance(feeToken)
	require.NoError(t, err)
	assert.Equal(t, int64(100), feeBal.Int64())

	// The store recovers once the backend does.
	_, err = b.TransferCrossChain(alice, alice, big.NewInt(1), big.NewInt(5), nil, 2, feeToken)
	require.NoError(t, err)
	require.Len(t, relay.submitted, 1)
}

func TestTransferCrossChainInsufficientAsset(t *testing.T) {
	b, _, s := newTestBridge(t)
	require.NoError(t, b.EnableChain(owner, 2, remote, nil))
	require.NoError(t, b.FundFees(owner, feeToken, big.NewInt(100)))
	mintFor(t, s, alice, 1, 3, "")

	_, err := b.TransferCrossChain(alice, alice, big.NewInt(1), big.NewInt(5), nil, 2, feeToken)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
}

func receiveMessage(quantity int64, sender common.Address) Message {
	payload, _ := EncodeTransfer(&TransferPayload{
		From:     alice,
		To:       alice,
		AssetID:  big.NewInt(1),
		Quantity: big.NewInt(quantity),
		AssetURI: "ipfs://asset-1",
	})
	return Message{
		SourceChain: 2,
		DestChain:   1,
		Sender:      sender,
		Payload:     payload,
	}
}

func TestReceiveMintsForPayloadRecipient(t *testing.T) {
	b, _, s := newTestBridge(t)
	require.NoError(t, b.EnableChain(owner, 2, remote, nil))

	require.NoError(t, b.Receive(relayEntry, receiveMessage(5, remote)))

	bal, err := ledger.BalanceOf(s, big.NewInt(1), alice)
	require.NoError(t, err)
	assert.Equal(t, int64(5), bal.Int64())

	uri, err := ledger.URI(s, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "ipfs://asset-1", uri)
}

func TestReceiveRejectsUntrustedCaller(t *testing.T) {
	b, _, _ := newTestBridge(t)
	require.NoError(t, b.EnableChain(owner, 2, remote, nil))

	assert.ErrorIs(t, b.Receive(alice, receiveMessage(5, remote)), ErrUnauthorizedRelay)
}

func TestReceiveRejectsUnknownSourceAndSender(t *testing.T) {
	b, _, _ := newTestBridge(t)

	// Source chain not enabled.
	assert.ErrorIs(t, b.Receive(relayEntry, receiveMessage(5, remote)), ErrChainNotEnabled)

	require.NoError(t, b.EnableChain(owner, 2, remote, nil))
	assert.ErrorIs(t, b.Receive(relayEntry, receiveMessage(5, alice)), ErrUnknownSender)
}

func TestFeeBalanceSurvivesAcrossTokens(t *testing.T) {
	b, _, s := newTestBridge(t)
	other := common.HexToAddress("0xff")
	require.NoError(t, b.FundFees(owner, feeToken, big.NewInt(40)))
	require.NoError(t, b.FundFees(owner, other, big.NewInt(7)))

	bal, err := fungible.BalanceOf(s, feeToken, self)
	require.NoError(t, err)
	assert.Equal(t, int64(40), bal.Int64())

	bal, err = fungible.BalanceOf(s, other, self)
	require.NoError(t, err)
	assert.Equal(t, int64(7), bal.Int64())
}
