package lending

import (
	"math/big"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidRound is returned when the price reference reports round 0.
	ErrInvalidRound = errors.New("invalid price feed round")

	// ErrStalePrice is returned when the price reference has not updated
	// within the configured heartbeat.
	ErrStalePrice = errors.New("price feed is stale")
)

// PriceFeed is the USD price reference for the loan currency.
type PriceFeed interface {
	// LatestRoundData returns the most recent round: its id, the price of
	// one whole loan-currency unit in USD scaled by 10^Decimals, and the
	// update time.
	LatestRoundData() (roundID *big.Int, price *big.Int, updatedAt time.Time, err error)

	// Decimals is the feed's price scale.
	Decimals() uint8
}

// currentPrice reads the feed and enforces the round and staleness checks.
func (e *Engine) currentPrice() (*big.Int, error) {
	roundID, price, updatedAt, err := e.feed.LatestRoundData()
	if err != nil {
		return nil, errors.Wrap(err, "read price feed")
	}
	if roundID == nil || roundID.Sign() == 0 {
		return nil, ErrInvalidRound
	}
	if e.now().Sub(updatedAt) > e.heartbeat {
		return nil, ErrStalePrice
	}
	if price == nil || price.Sign() <= 0 {
		return nil, ErrInvalidRound
	}
	return price, nil
}
