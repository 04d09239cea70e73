package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
)

// ErrNotIssuer is returned when mint or burn is attempted by a caller that is
// neither the registered issuer nor the asset entity itself.
var ErrNotIssuer = errors.New("caller is not the registered issuer")

// Ledger is the externally callable surface of the asset ledger. Mint and
// burn are restricted to the registered issuer or the asset entity itself;
// transfers require the caller to be the debited owner.
type Ledger struct {
	store *state.Store
	log   *zap.Logger

	// self is the asset entity's own address. The bridge capability of the
	// same entity mints and burns under this identity.
	self common.Address
}

// New creates the ledger surface over the given store.
func New(store *state.Store, self common.Address, log *zap.Logger) *Ledger {
	return &Ledger{store: store, self: self, log: log}
}

// Self returns the asset entity's address.
func (l *Ledger) Self() common.Address { return l.self }

// Store returns the underlying chain-state store.
func (l *Ledger) Store() *state.Store { return l.store }

// Init records the owner role. It is a no-op if an owner is already set.
func (l *Ledger) Init(owner common.Address) error {
	view := l.store.View()
	existing, err := state.RoleAddress(view, entry.RoleOwner)
	if err != nil {
		return err
	}
	if existing != (common.Address{}) {
		return nil
	}
	if err := state.SetRole(view, entry.RoleOwner, owner); err != nil {
		return err
	}
	return view.Commit()
}

// SetIssuer records the address allowed to mint and burn. Owner only.
func (l *Ledger) SetIssuer(caller, issuer common.Address) error {
	view := l.store.View()
	if err := state.RequireRole(view, entry.RoleOwner, caller); err != nil {
		return errors.Wrap(err, "set issuer")
	}
	if err := state.SetRole(view, entry.RoleIssuer, issuer); err != nil {
		return err
	}
	if err := view.Commit(); err != nil {
		return err
	}
	l.log.Info("issuer updated", zap.Stringer("issuer", issuer))
	return nil
}

// requireIssuer fails unless caller is the registered issuer or the asset
// entity itself.
func (l *Ledger) requireIssuer(v state.LedgerView, caller common.Address) error {
	if caller == l.self {
		return nil
	}
	issuer, err := state.RoleAddress(v, entry.RoleIssuer)
	if err != nil {
		return err
	}
	if issuer == (common.Address{}) || issuer != caller {
		return ErrNotIssuer
	}
	return nil
}

// Mint creates quantity units of the asset for to. Issuer or self only.
func (l *Ledger) Mint(caller, to common.Address, assetID, quantity *big.Int, uri string) error {
	view := l.store.View()
	if err := l.requireIssuer(view, caller); err != nil {
		return err
	}
	if err := Mint(view, to, assetID, quantity, uri); err != nil {
		return err
	}
	if err := view.Commit(); err != nil {
		return err
	}
	l.log.Info("minted",
		zap.String("asset", assetID.String()),
		zap.Stringer("to", to),
		zap.String("quantity", quantity.String()))
	return nil
}

// Burn destroys quantity units of the asset held by owner. Issuer or self only.
func (l *Ledger) Burn(caller, owner common.Address, assetID, quantity *big.Int) error {
	view := l.store.View()
	if err := l.requireIssuer(view, caller); err != nil {
		return err
	}
	if err := Burn(view, owner, assetID, quantity); err != nil {
		return err
	}
	if err := view.Commit(); err != nil {
		return err
	}
	l.log.Info("burned",
		zap.String("asset", assetID.String()),
		zap.Stringer("owner", owner),
		zap.String("quantity", quantity.String()))
	return nil
}

// Transfer moves quantity units from the caller to another owner.
func (l *Ledger) Transfer(caller, to common.Address, assetID, quantity *big.Int) error {
	view := l.store.View()
	if err := Transfer(view, assetID, caller, to, quantity); err != nil {
		return err
	}
	return view.Commit()
}

// BalanceOf returns owner's balance of the asset.
func (l *Ledger) BalanceOf(assetID *big.Int, owner common.Address) (*big.Int, error) {
	return BalanceOf(l.store, assetID, owner)
}

// TotalSupply returns the asset's total supply on this chain.
func (l *Ledger) TotalSupply(assetID *big.Int) (*big.Int, error) {
	return TotalSupply(l.store, assetID)
}

// URI returns the asset's metadata URI.
func (l *Ledger) URI(assetID *big.Int) (string, error) {
	return URI(l.store, assetID)
}
