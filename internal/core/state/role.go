package state

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/keylet"
)

// ErrUnauthorized is returned when the caller does not hold the role a
// privileged operation requires.
var ErrUnauthorized = errors.New("caller not authorized")

// RoleAddress returns the address holding the named role, or the zero
// address when the role is unset.
func RoleAddress(v Reader, name string) (common.Address, error) {
	data, err := v.Read(keylet.Role(name))
	if err != nil {
		return common.Address{}, err
	}
	if data == nil {
		return common.Address{}, nil
	}
	return entry.ParseRole(data)
}

// SetRole records the address holding the named role.
func SetRole(v LedgerView, name string, addr common.Address) error {
	return Write(v, keylet.Role(name), entry.SerializeRole(addr))
}

// RequireRole fails with ErrUnauthorized unless caller holds the named role.
// An unset role authorizes nobody.
func RequireRole(v Reader, name string, caller common.Address) error {
	holder, err := RoleAddress(v, name)
	if err != nil {
		return err
	}
	if holder == (common.Address{}) || holder != caller {
		return ErrUnauthorized
	}
	return nil
}
