package valuation

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/oracle"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
)

// JobConfig carries the oracle network parameters for valuation jobs.
type JobConfig struct {
	Source         string
	SubscriptionID uint64
	GasLimit       uint32
	NetworkID      [32]byte
}

// Refresher issues per-asset valuation refresh requests through a keyed
// correlator and applies the responses to the valuation store.
type Refresher struct {
	correlator *oracle.Correlator
	job        JobConfig
}

// NewRefresher creates a refresher. The correlator is keyed per asset, so
// refreshes of different assets can be in flight at the same time while each
// asset stays single-flight.
func NewRefresher(store *state.Store, client oracle.Client, self, oracleEntry common.Address, job JobConfig, log *zap.Logger) *Refresher {
	return &Refresher{
		correlator: oracle.New(store, client, self, oracleEntry, oracle.Keyed, ApplyResponse, log),
		job:        job,
	}
}

// Correlator exposes the underlying correlator; the oracle network's entry
// point delivers fulfillments to it.
func (r *Refresher) Correlator() *oracle.Correlator { return r.correlator }

// RequestRefresh issues a valuation refresh for one asset. Owner or the
// automation address only; fails while a refresh for the same asset is
// outstanding.
func (r *Refresher) RequestRefresh(caller common.Address, assetID *big.Int) (common.Hash, error) {
	return r.correlator.Request(caller, assetID, common.Address{}, oracle.JobRequest{
		Source:         r.job.Source,
		Args:           []string{assetID.String()},
		SubscriptionID: r.job.SubscriptionID,
		GasLimit:       r.job.GasLimit,
		NetworkID:      r.job.NetworkID,
	})
}

// CancelRefresh clears the outstanding refresh for one asset. Owner only.
func (r *Refresher) CancelRefresh(caller common.Address, assetID *big.Int) error {
	return r.correlator.Cancel(caller, assetID)
}
