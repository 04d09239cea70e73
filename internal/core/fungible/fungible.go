// Package fungible tracks component-held balances of external fungible
// tokens: the loan currency disbursed by the lending engine and the fee
// currencies the bridge pays the relay with. Credits model deposits arriving
// from outside the system; all other movement is transfers between holders.
package fungible

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/keylet"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
)

var (
	// ErrInsufficientFunds is returned when a holder lacks the amount
	// being debited.
	ErrInsufficientFunds = errors.New("insufficient token balance")

	// ErrZeroAmount is returned for a zero or negative movement.
	ErrZeroAmount = errors.New("amount must be positive")
)

// BalanceOf returns holder's balance of the token. Absent entries are zero.
func BalanceOf(v state.Reader, token, holder common.Address) (*big.Int, error) {
	data, err := v.Read(keylet.Fungible(token, holder))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return new(big.Int), nil
	}
	return entry.ParseAmount(data)
}

func setBalance(v state.LedgerView, token, holder common.Address, amount *big.Int) error {
	k := keylet.Fungible(token, holder)
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

// Credit adds amount to holder's balance of the token.
func Credit(v state.LedgerView, token, holder common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	balance, err := BalanceOf(v, token, holder)
	if err != nil {
		return err
	}
	return setBalance(v, token, holder, new(big.Int).Add(balance, amount))
}

// Debit removes amount from holder's balance of the token.
func Debit(v state.LedgerView, token, holder common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	balance, err := BalanceOf(v, token, holder)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	return setBalance(v, token, holder, new(big.Int).Sub(balance, amount))
}

// Transfer moves amount of the token between holders.
func Transfer(v state.LedgerView, token, from, to common.Address, amount *big.Int) error {
	if err := Debit(v, token, from, amount); err != nil {
		return err
	}
	balance, err := BalanceOf(v, token, to)
	if err != nil {
		return err
	}
	return setBalance(v, token, to, new(big.Int).Add(balance, amount))
}
