package coretest

import (
	"math/big"
	"sync"
	"time"
)

// Feed is a settable price feed.
type Feed struct {
	mu        sync.Mutex
	round     *big.Int
	price     *big.Int
	updatedAt time.Time
	decimals  uint8
}

// NewFeed creates a feed reporting the given price at the given instant.
func NewFeed(price int64, decimals uint8, updatedAt time.Time) *Feed {
	return &Feed{
		round:     big.NewInt(1),
		price:     big.NewInt(price),
		updatedAt: updatedAt,
		decimals:  decimals,
	}
}

// Set advances the round with a new price and update time.
func (f *Feed) Set(price int64, updatedAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.round = new(big.Int).Add(f.round, big.NewInt(1))
	f.price = big.NewInt(price)
	f.updatedAt = updatedAt
}

// SetRound overrides the reported round id, for invalid-round tests.
func (f *Feed) SetRound(round *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.round = round
}

// LatestRoundData returns the current round.
func (f *Feed) LatestRoundData() (*big.Int, *big.Int, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.round, f.price, f.updatedAt, nil
}

// Decimals returns the feed's price scale.
func (f *Feed) Decimals() uint8 { return f.decimals }
