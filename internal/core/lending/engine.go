// Package lending implements borrowing against tokenized asset collateral.
// Loan size and liquidation threshold derive from the oracle-written
// valuation record, converted into the loan currency via a USD price
// reference with a staleness check. One active loan per (asset, borrower);
// collateral sits in the engine's own ledger custody for the loan's life.
package lending

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/fungible"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/keylet"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/ledger"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/valuation"
)

var (
	// ErrLoanActive is returned when the (asset, borrower) pair already has
	// an active loan.
	ErrLoanActive = errors.New("loan already active")

	// ErrNoActiveLoan is returned for repay or liquidate with no record.
	ErrNoActiveLoan = errors.New("no active loan")

	// ErrZeroValuation is returned when the collateral values to zero.
	ErrZeroValuation = errors.New("collateral valuation is zero")

	// ErrLoanBelowMinimum is the borrower's slippage guard on loan size.
	ErrLoanBelowMinimum = errors.New("loan amount below requested minimum")

	// ErrThresholdTooHigh is the borrower's guard on liquidation risk.
	ErrThresholdTooHigh = errors.New("liquidation threshold above requested maximum")

	// ErrInsufficientLiquidity is returned when the engine cannot disburse.
	ErrInsufficientLiquidity = errors.New("insufficient loan currency liquidity")
)

// Config carries the engine's fixed lending parameters.
type Config struct {
	// InitialLTVPercent caps the loan at this share of collateral value.
	InitialLTVPercent uint64

	// LiquidationLTVPercent sets the recorded liquidation threshold.
	LiquidationLTVPercent uint64

	// Heartbeat bounds the price reference's age.
	Heartbeat time.Duration

	// LoanToken is the loan currency's token address.
	LoanToken common.Address

	// LoanDecimals is the loan currency's smallest-unit scale.
	LoanDecimals uint8
}

// Engine is the collateralized lending engine.
type Engine struct {
	store *state.Store
	feed  PriceFeed
	log   *zap.Logger
	guard state.Guard

	// self is the engine's address: the custody entry for collateral and
	// the holder of loan-currency liquidity.
	self common.Address

	cfg       Config
	heartbeat time.Duration

	// now is the clock, injectable for staleness tests.
	now func() time.Time
}

// New creates a lending engine.
func New(store *state.Store, feed PriceFeed, self common.Address, cfg Config, log *zap.Logger) *Engine {
	return &Engine{
		store:     store,
		feed:      feed,
		log:       log,
		self:      self,
		cfg:       cfg,
		heartbeat: cfg.Heartbeat,
		now:       time.Now,
	}
}

// SetClock replaces the engine's clock. Tests use it to age the price feed.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Self returns the engine's custody address.
func (e *Engine) Self() common.Address { return e.self }

// FundLiquidity credits the engine's loan-currency pool. Owner only.
func (e *Engine) FundLiquidity(caller common.Address, amount *big.Int) error {
	view := e.store.View()
	if err := state.RequireRole(view, entry.RoleOwner, caller); err != nil {
		return errors.Wrap(err, "fund liquidity")
	}
	if err := fungible.Credit(view, e.cfg.LoanToken, e.self, amount); err != nil {
		return err
	}
	return view.Commit()
}

// Loan returns the active loan record for (asset, borrower), or
// ErrNoActiveLoan.
func (e *Engine) Loan(assetID *big.Int, borrower common.Address) (*entry.LoanData, error) {
	data, err := e.store.Read(keylet.Loan(assetID, borrower))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNoActiveLoan
	}
	return entry.ParseLoan(data)
}

// valuationInLoanCurrency returns the asset's full weighted valuation in the
// loan currency's smallest unit.
func (e *Engine) valuationInLoanCurrency(v state.Reader, assetID *big.Int) (*big.Int, error) {
	record, err := valuation.Get(v, assetID)
	if err != nil {
		return nil, err
	}
	price, err := e.currentPrice()
	if err != nil {
		return nil, err
	}
	usd := weightedValuation(record)
	return toLoanCurrency(usd, price, e.cfg.LoanDecimals, e.feed.Decimals()), nil
}

// perUnitValuation scales the asset valuation to the collateral quantity:
// valuation × quantity / totalSupply, truncating.
func (e *Engine) perUnitValuation(v state.Reader, assetID, quantity *big.Int) (*big.Int, error) {
	total, err := e.valuationInLoanCurrency(v, assetID)
	if err != nil {
		return nil, err
	}
	supply, err := ledger.TotalSupply(v, assetID)
	if err != nil {
		return nil, err
	}
	if supply.Sign() == 0 {
		return new(big.Int), nil
	}
	out := new(big.Int).Mul(total, quantity)
	return out.Quo(out, supply), nil
}

// Borrow opens a loan: pulls quantity of the asset into engine custody and
// disburses initial-LTV percent of its valuation in the loan currency.
// minLoanAmount and maxLiquidationThreshold are the borrower's guards
// against valuation moving between quote and execution.
func (e *Engine) Borrow(caller common.Address, assetID, quantity *big.Int, auxData []byte, minLoanAmount, maxLiquidationThreshold *big.Int) error {
	if err := e.guard.Enter(); err != nil {
		return err
	}
	defer e.guard.Exit()

	view := e.store.View()

	loanKey := keylet.Loan(assetID, caller)
	exists, err := view.Exists(loanKey)
	if err != nil {
		return err
	}
	if exists {
		return ErrLoanActive
	}

	perUnit, err := e.perUnitValuation(view, assetID, quantity)
	if err != nil {
		return err
	}
	if perUnit.Sign() == 0 {
		return ErrZeroValuation
	}

	loanAmount := applyPercent(perUnit, e.cfg.InitialLTVPercent)
	if loanAmount.Cmp(minLoanAmount) < 0 {
		return ErrLoanBelowMinimum
	}

	threshold := applyPercent(perUnit, e.cfg.LiquidationLTVPercent)
	if threshold.Cmp(maxLiquidationThreshold) > 0 {
		return ErrThresholdTooHigh
	}

	// Pull collateral into custody, then disburse.
	if err := ledger.Transfer(view, assetID, caller, e.self, quantity); err != nil {
		return err
	}
	if err := fungible.Transfer(view, e.cfg.LoanToken, e.self, caller, loanAmount); err != nil {
		if errors.Is(err, fungible.ErrInsufficientFunds) {
			return ErrInsufficientLiquidity
		}
		return err
	}

	record := &entry.LoanData{
		Collateral:           quantity,
		LoanAmount:           loanAmount,
		LiquidationThreshold: threshold,
	}
	if err := view.Insert(loanKey, entry.SerializeLoan(record)); err != nil {
		return err
	}
	if err := view.Commit(); err != nil {
		return err
	}

	e.log.Info("loan opened",
		zap.String("asset", assetID.String()),
		zap.Stringer("borrower", caller),
		zap.String("collateral", quantity.String()),
		zap.String("loanAmount", loanAmount.String()),
		zap.String("liquidationThreshold", threshold.String()))
	return nil
}

// Repay closes the caller's loan: pulls back the loan amount and returns the
// custodied collateral.
func (e *Engine) Repay(caller common.Address, assetID *big.Int) error {
	if err := e.guard.Enter(); err != nil {
		return err
	}
	defer e.guard.Exit()

	view := e.store.View()

	loanKey := keylet.Loan(assetID, caller)
	data, err := view.Read(loanKey)
	if err != nil {
		return err
	}
	if data == nil {
		return ErrNoActiveLoan
	}
	record, err := entry.ParseLoan(data)
	if err != nil {
		return err
	}

	if err := fungible.Transfer(view, e.cfg.LoanToken, caller, e.self, record.LoanAmount); err != nil {
		return err
	}
	if err := ledger.Transfer(view, assetID, e.self, caller, record.Collateral); err != nil {
		return err
	}
	if err := view.Erase(loanKey); err != nil {
		return err
	}
	if err := view.Commit(); err != nil {
		return err
	}

	e.log.Info("loan repaid",
		zap.String("asset", assetID.String()),
		zap.Stringer("borrower", caller))
	return nil
}

// Liquidate recomputes the liquidation threshold at current prices. If it
// has fallen strictly below the threshold recorded at borrow time, the loan
// record is deleted; the collateral stays in engine custody. A healthy
// position is left untouched and the call succeeds without effect.
func (e *Engine) Liquidate(caller common.Address, assetID *big.Int, borrower common.Address) error {
	if err := e.guard.Enter(); err != nil {
		return err
	}
	defer e.guard.Exit()

	view := e.store.View()

	loanKey := keylet.Loan(assetID, borrower)
	data, err := view.Read(loanKey)
	if err != nil {
		return err
	}
	if data == nil {
		return ErrNoActiveLoan
	}
	record, err := entry.ParseLoan(data)
	if err != nil {
		return err
	}

	perUnit, err := e.perUnitValuation(view, assetID, record.Collateral)
	if err != nil {
		return err
	}
	fresh := applyPercent(perUnit, e.cfg.LiquidationLTVPercent)

	if fresh.Cmp(record.LiquidationThreshold) >= 0 {
		// Still healthy.
		return nil
	}

	if err := view.Erase(loanKey); err != nil {
		return err
	}
	if err := view.Commit(); err != nil {
		return err
	}

	e.log.Info("loan liquidated",
		zap.String("asset", assetID.String()),
		zap.Stringer("borrower", borrower),
		zap.Stringer("liquidator", caller),
		zap.String("freshThreshold", fresh.String()),
		zap.String("recordedThreshold", record.LiquidationThreshold.String()))
	return nil
}
