package node_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/bridge"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/valuation"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/coretest"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/node"
)

var (
	alice    = coretest.Addr("alice")
	feeToken = coretest.Addr("link")
	assetID  = big.NewInt(1)
)

// setupTwoChains builds connected chains 1 and 2 with 20 units of the asset
// minted for alice on chain 1 and fee balances on both bridges.
func setupTwoChains(t *testing.T) (*coretest.Env, *node.Chain, *node.Chain) {
	t.Helper()
	env := coretest.NewEnv(t)
	env.Connect(1, 2)
	env.FundFees(1, feeToken, 1000)
	env.FundFees(2, feeToken, 1000)

	home := env.Chain(1)
	require.NoError(t, home.Ledger.SetIssuer(env.Owner, env.Owner))
	require.NoError(t, home.Ledger.Mint(env.Owner, alice, assetID, big.NewInt(20), "ipfs://asset-1"))
	return env, home, env.Chain(2)
}

func totalSupply(t *testing.T, chains ...*node.Chain) int64 {
	t.Helper()
	var sum int64
	for _, c := range chains {
		s, err := c.Ledger.TotalSupply(assetID)
		require.NoError(t, err)
		sum += s.Int64()
	}
	return sum
}

func TestSelfIsDeterministicPerChain(t *testing.T) {
	assert.Equal(t, node.Self(1), node.Self(1))
	assert.NotEqual(t, node.Self(1), node.Self(2))
}

func TestCrossChainTransferConservesSupply(t *testing.T) {
	env, home, remote := setupTwoChains(t)

	_, err := home.Bridge.TransferCrossChain(alice, alice, assetID, big.NewInt(5), nil, 2, feeToken)
	require.NoError(t, err)

	// In flight: the burn has happened, the mint has not.
	assert.Equal(t, int64(15), totalSupply(t, home, remote))

	require.NoError(t, env.Relay.DeliverAll())
	assert.Equal(t, int64(20), totalSupply(t, home, remote))

	bal, err := remote.Ledger.BalanceOf(assetID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(5), bal.Int64())

	// The metadata URI travelled with the transfer.
	uri, err := remote.Ledger.URI(assetID)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://asset-1", uri)
}

func TestCrossChainRoundTrip(t *testing.T) {
	env, home, remote := setupTwoChains(t)

	_, err := home.Bridge.TransferCrossChain(alice, alice, assetID, big.NewInt(5), nil, 2, feeToken)
	require.NoError(t, err)
	require.NoError(t, env.Relay.DeliverAll())

	_, err = remote.Bridge.TransferCrossChain(alice, alice, assetID, big.NewInt(5), nil, 1, feeToken)
	require.NoError(t, err)
	require.NoError(t, env.Relay.DeliverAll())

	bal, err := home.Ledger.BalanceOf(assetID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(20), bal.Int64())
	assert.Equal(t, int64(20), totalSupply(t, home, remote))
}

func TestDroppedDeliveryLeavesBurnExecuted(t *testing.T) {
	env, home, remote := setupTwoChains(t)

	_, err := home.Bridge.TransferCrossChain(alice, alice, assetID, big.NewInt(5), nil, 2, feeToken)
	require.NoError(t, err)
	require.NoError(t, env.Relay.Drop(0))

	// The burn is permanent: global supply stays reduced.
	assert.Equal(t, int64(15), totalSupply(t, home, remote))
	bal, err := home.Ledger.BalanceOf(assetID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(15), bal.Int64())
}

func TestOutOfOrderDeliveriesBothMint(t *testing.T) {
	env, home, remote := setupTwoChains(t)

	_, err := home.Bridge.TransferCrossChain(alice, alice, assetID, big.NewInt(3), nil, 2, feeToken)
	require.NoError(t, err)
	_, err = home.Bridge.TransferCrossChain(alice, alice, assetID, big.NewInt(4), nil, 2, feeToken)
	require.NoError(t, err)

	require.NoError(t, env.Relay.Deliver(1))
	require.NoError(t, env.Relay.Deliver(0))

	bal, err := remote.Ledger.BalanceOf(assetID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(7), bal.Int64())
	assert.Equal(t, int64(20), totalSupply(t, home, remote))
}

func TestReceiveRejectsForgedSender(t *testing.T) {
	_, _, remote := setupTwoChains(t)

	payload, err := bridge.EncodeTransfer(&bridge.TransferPayload{
		From:     alice,
		To:       alice,
		AssetID:  assetID,
		Quantity: big.NewInt(1000),
		AssetURI: "ipfs://forged",
	})
	require.NoError(t, err)

	msg := bridge.Message{
		SourceChain: 1,
		DestChain:   2,
		Sender:      coretest.Addr("attacker"),
		Payload:     payload,
	}
	err = remote.Bridge.Receive(coretest.Addr("attacker"), msg)
	assert.ErrorIs(t, err, bridge.ErrUnauthorizedRelay)
}

func TestValuationRefreshOverOracle(t *testing.T) {
	env, home, _ := setupTwoChains(t)

	reqID, err := home.Refresher.RequestRefresh(env.Owner, assetID)
	require.NoError(t, err)

	job := env.Oracle.LastJob()
	assert.Equal(t, reqID, job.ID)
	assert.Equal(t, []string{"1"}, job.Req.Args)

	response, err := valuation.EncodeResponse(&entry.ValuationData{
		ListPrice:         big.NewInt(100_000),
		OriginalListPrice: big.NewInt(110_000),
		TaxAssessedValue:  big.NewInt(90_000),
	})
	require.NoError(t, err)
	require.NoError(t, env.Oracle.Fulfill(home.Refresher.Correlator(), reqID, response, nil))

	v, err := valuation.Get(home.Store, assetID)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), v.ListPrice.Int64())
}

func TestBorrowAgainstRefreshedValuation(t *testing.T) {
	env, home, _ := setupTwoChains(t)

	reqID, err := home.Refresher.RequestRefresh(env.Owner, assetID)
	require.NoError(t, err)
	response, err := valuation.EncodeResponse(&entry.ValuationData{
		ListPrice:         big.NewInt(100_000),
		OriginalListPrice: big.NewInt(110_000),
		TaxAssessedValue:  big.NewInt(90_000),
	})
	require.NoError(t, err)
	require.NoError(t, env.Oracle.Fulfill(home.Refresher.Correlator(), reqID, response, nil))

	require.NoError(t, home.Engine.FundLiquidity(env.Owner, big.NewInt(1_000_000_000_000)))
	require.NoError(t, home.Engine.Borrow(alice, assetID, big.NewInt(5), nil,
		new(big.Int), new(big.Int).Lsh(big.NewInt(1), 250)))

	record, err := home.Engine.Loan(assetID, alice)
	require.NoError(t, err)
	// 101,000 USD weighted, 5 of 20 units, 60% LTV at a 1.00 USD price.
	assert.Equal(t, int64(15_150_000_000), record.LoanAmount.Int64())

	require.NoError(t, home.Engine.Repay(alice, assetID))
	bal, err := home.Ledger.BalanceOf(assetID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(20), bal.Int64())
}
