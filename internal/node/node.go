// Package node assembles a chain instance: the state store and the asset
// entity's capabilities wired over it.
package node

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/config"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/bridge"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/lending"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/ledger"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/oracle"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/valuation"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/storage"
)

// Dependencies are the external services a chain instance attaches to.
type Dependencies struct {
	Relay  bridge.Relayer
	Oracle oracle.Client
	Feed   lending.PriceFeed

	// RelayEntry is the trusted relay delivery address.
	RelayEntry common.Address

	// OracleEntry is the trusted oracle fulfillment address.
	OracleEntry common.Address
}

// Chain is an assembled chain instance.
type Chain struct {
	Store     *state.Store
	Ledger    *ledger.Ledger
	Bridge    *bridge.Bridge
	Refresher *valuation.Refresher
	Engine    *lending.Engine

	storage *storage.Manager
	log     *zap.Logger
}

// Self derives the asset entity's address from the chain selector. Every
// capability of one chain instance shares it.
func Self(chainSelector uint64) common.Address {
	id := big8(chainSelector)
	return common.BytesToAddress(crypto.Keccak256([]byte("estated-entity"), id)[12:])
}

func big8(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

// New opens the chain's state database and wires the capabilities.
func New(cfg *config.Config, deps Dependencies, log *zap.Logger) (*Chain, error) {
	mgr := storage.NewManager(cfg.Database, cfg.DataDir)
	db, err := mgr.OpenDB("state")
	if err != nil {
		return nil, errors.Wrap(err, "open state database")
	}

	store, err := state.NewStore(db)
	if err != nil {
		mgr.CloseAll()
		return nil, errors.Wrap(err, "open state store")
	}

	self := Self(cfg.ChainSelector)

	var networkID [32]byte
	copy(networkID[:], common.FromHex(cfg.Oracle.NetworkID))

	c := &Chain{
		Store:  store,
		Ledger: ledger.New(store, self, log.Named("ledger")),
		Bridge: bridge.New(store, deps.Relay, self, deps.RelayEntry, cfg.ChainSelector, log.Named("bridge")),
		Refresher: valuation.NewRefresher(store, deps.Oracle, self, deps.OracleEntry, valuation.JobConfig{
			Source:         cfg.Oracle.Source,
			SubscriptionID: cfg.Oracle.SubscriptionID,
			GasLimit:       cfg.Oracle.GasLimit,
			NetworkID:      networkID,
		}, log.Named("valuation")),
		Engine: lending.New(store, deps.Feed, self, lending.Config{
			InitialLTVPercent:     uint64(cfg.Lending.InitialLTVPercent),
			LiquidationLTVPercent: uint64(cfg.Lending.LiquidationLTVPercent),
			Heartbeat:             time.Duration(cfg.Lending.PriceHeartbeatSeconds) * time.Second,
			LoanToken:             common.HexToAddress(cfg.Lending.LoanToken),
			LoanDecimals:          cfg.Lending.LoanDecimals,
		}, log.Named("lending")),
		storage: mgr,
		log:     log,
	}

	if cfg.Owner != "" {
		if err := c.Ledger.Init(common.HexToAddress(cfg.Owner)); err != nil {
			mgr.CloseAll()
			return nil, errors.Wrap(err, "initialize owner")
		}
	}

	return c, nil
}

// Close releases the chain's storage.
func (c *Chain) Close() error {
	return c.storage.CloseAll()
}
