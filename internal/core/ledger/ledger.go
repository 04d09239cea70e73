// Package ledger implements the multi-asset balance store: per-(asset, owner)
// balances with a per-asset total supply and metadata URI. The package-level
// functions are the ungated bookkeeping primitives other components compose
// inside their own atomic calls; the Ledger service wraps them with the
// issuer/owner gating of the external surface.
package ledger

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/keylet"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
)

var (
	// ErrZeroQuantity is returned for a mint, burn or transfer of zero.
	ErrZeroQuantity = errors.New("quantity must be positive")

	// ErrInsufficientBalance is returned when an owner lacks the quantity
	// being moved or burned.
	ErrInsufficientBalance = errors.New("insufficient asset balance")

	// ErrZeroAddress is returned when the zero address is used as a party.
	ErrZeroAddress = errors.New("zero address")
)

// BalanceOf returns owner's balance of the asset. Absent entries are zero.
func BalanceOf(v state.Reader, assetID *big.Int, owner common.Address) (*big.Int, error) {
	data, err := v.Read(keylet.Balance(assetID, owner))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return new(big.Int), nil
	}
	return entry.ParseAmount(data)
}

// TotalSupply returns the asset's total supply on this chain.
func TotalSupply(v state.Reader, assetID *big.Int) (*big.Int, error) {
	data, err := v.Read(keylet.Supply(assetID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return new(big.Int), nil
	}
	return entry.ParseAmount(data)
}

// URI returns the asset's metadata URI, empty if unset.
func URI(v state.Reader, assetID *big.Int) (string, error) {
	data, err := v.Read(keylet.URI(assetID))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// setBalance writes owner's balance, erasing the entry at zero.
func setBalance(v state.LedgerView, assetID *big.Int, owner common.Address, amount *big.Int) error {
	k := keylet.Balance(assetID, owner)
	if amount.Sign() == 0 {
		exists, err := v.Exists(k)
		if err != nil {
			return err
		}
		if exists {
			return v.Erase(k)
		}
		return nil
	}
	return state.Write(v, k, entry.SerializeAmount(amount))
}

// setSupply writes the asset's total supply, erasing the entry at zero.
func setSupply(v state.LedgerView, assetID *big.Int, amount *big.Int) error {
	k := keylet.Supply(assetID)
	if amount.Sign() == 0 {
		exists, err := v.Exists(k)
		if err != nil {
			return err
		}
		if exists {
			return v.Erase(k)
		}
		return nil
	}
	return state.Write(v, k, entry.SerializeAmount(amount))
}

// Mint creates quantity units of the asset for to, attaching the URI when
// non-empty. Supply grows by the same quantity.
func Mint(v state.LedgerView, to common.Address, assetID, quantity *big.Int, uri string) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if quantity == nil || quantity.Sign() <= 0 {
		return ErrZeroQuantity
	}

	balance, err := BalanceOf(v, assetID, to)
	if err != nil {
		return err
	}
	if err := setBalance(v, assetID, to, new(big.Int).Add(balance, quantity)); err != nil {
		return err
	}

	supply, err := TotalSupply(v, assetID)
	if err != nil {
		return err
	}
	if err := setSupply(v, assetID, new(big.Int).Add(supply, quantity)); err != nil {
		return err
	}

	if uri != "" {
		return state.Write(v, keylet.URI(assetID), []byte(uri))
	}
	return nil
}

// Burn destroys quantity units of the asset held by owner. Supply shrinks by
// the same quantity.
func Burn(v state.LedgerView, owner common.Address, assetID, quantity *big.Int) error {
	if quantity == nil || quantity.Sign() <= 0 {
		return ErrZeroQuantity
	}

	balance, err := BalanceOf(v, assetID, owner)
	if err != nil {
		return err
	}
	if balance.Cmp(quantity) < 0 {
		return ErrInsufficientBalance
	}
	if err := setBalance(v, assetID, owner, new(big.Int).Sub(balance, quantity)); err != nil {
		return err
	}

	supply, err := TotalSupply(v, assetID)
	if err != nil {
		return err
	}
	return setSupply(v, assetID, new(big.Int).Sub(supply, quantity))
}

// Transfer moves quantity units of the asset from one owner to another.
// Supply is unchanged.
func Transfer(v state.LedgerView, assetID *big.Int, from, to common.Address, quantity *big.Int) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if quantity == nil || quantity.Sign() <= 0 {
		return ErrZeroQuantity
	}
	if from == to {
		return nil
	}

	fromBalance, err := BalanceOf(v, assetID, from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(quantity) < 0 {
		return ErrInsufficientBalance
	}
	if err := setBalance(v, assetID, from, new(big.Int).Sub(fromBalance, quantity)); err != nil {
		return err
	}

	toBalance, err := BalanceOf(v, assetID, to)
	if err != nil {
		return err
	}
	return setBalance(v, assetID, to, new(big.Int).Add(toBalance, quantity))
}
