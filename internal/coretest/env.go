package coretest

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/config"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/node"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/relay/loopback"
)

// DefaultRelayFee is the flat delivery fee every chain charges in tests.
const DefaultRelayFee = 25

// Env is a multi-chain test environment. All chains share one loopback
// relay, one fake oracle network, one price feed, and one manual clock.
type Env struct {
	t *testing.T

	Relay  *loopback.Relay
	Oracle *OracleNet
	Feed   *Feed
	Clock  *ManualClock

	// Owner holds the administrative role on every chain.
	Owner common.Address

	// LoanToken is the loan currency configured on every lending engine.
	LoanToken common.Address

	chains map[uint64]*node.Chain
}

// NewEnv creates an environment with no chains. The feed starts at a price
// of 1.00000000 USD per loan-currency unit.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	clock := NewManualClock()
	return &Env{
		t:         t,
		Relay:     loopback.New(),
		Oracle:    NewOracleNet(),
		Feed:      NewFeed(100_000_000, 8, clock.Now()),
		Clock:     clock,
		Owner:     Addr("owner"),
		LoanToken: Addr("usdc"),
		chains:    make(map[uint64]*node.Chain),
	}
}

// Chain returns the chain instance for the selector, creating and
// registering it on the relay on first use.
func (e *Env) Chain(selector uint64) *node.Chain {
	e.t.Helper()
	if c, ok := e.chains[selector]; ok {
		return c
	}

	cfg := &config.Config{
		DataDir:       e.t.TempDir(),
		Database:      "memory",
		LogLevel:      "debug",
		ChainSelector: selector,
		Owner:         e.Owner.Hex(),
		Oracle: config.OracleConfig{
			Source:         "fetch-valuation",
			SubscriptionID: 7,
			GasLimit:       300_000,
		},
		Lending: config.LendingConfig{
			InitialLTVPercent:     60,
			LiquidationLTVPercent: 75,
			PriceHeartbeatSeconds: 3600,
			LoanToken:             e.LoanToken.Hex(),
			LoanDecimals:          6,
		},
	}

	c, err := node.New(cfg, node.Dependencies{
		Relay:       e.Relay,
		Oracle:      e.Oracle,
		Feed:        e.Feed,
		RelayEntry:  e.Relay.Identity(),
		OracleEntry: e.Oracle.Identity(),
	}, zaptest.NewLogger(e.t))
	require.NoError(e.t, err)
	e.t.Cleanup(func() { _ = c.Close() })

	c.Engine.SetClock(e.Clock.Now)
	e.Relay.Register(selector, c.Bridge, big.NewInt(DefaultRelayFee))
	e.chains[selector] = c
	return c
}

// Connect enables each chain as a destination of the other, registering the
// counterpart entity addresses.
func (e *Env) Connect(a, b uint64) {
	e.t.Helper()
	ca, cb := e.Chain(a), e.Chain(b)
	require.NoError(e.t, ca.Bridge.EnableChain(e.Owner, b, cb.Bridge.Self(), nil))
	require.NoError(e.t, cb.Bridge.EnableChain(e.Owner, a, ca.Bridge.Self(), nil))
}

// FundFees credits a chain's bridge with fee tokens from the owner.
func (e *Env) FundFees(selector uint64, feeToken common.Address, amount int64) {
	e.t.Helper()
	require.NoError(e.t, e.Chain(selector).Bridge.FundFees(e.Owner, feeToken, big.NewInt(amount)))
}
