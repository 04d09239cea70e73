package entry

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrMalformedRole is returned when a role entry is not 20 bytes.
var ErrMalformedRole = errors.New("malformed role entry")

// Role names for the singleton address entries. Each privileged operation
// checks the caller against the address stored under one of these.
const (
	RoleOwner      = "owner"
	RoleIssuer     = "issuer"
	RoleAutomation = "automation"
)

// SerializeRole encodes a role-holder address.
func SerializeRole(addr common.Address) []byte {
	return addr.Bytes()
}

// ParseRole decodes a role-holder address.
func ParseRole(data []byte) (common.Address, error) {
	if len(data) != common.AddressLength {
		return common.Address{}, ErrMalformedRole
	}
	return common.BytesToAddress(data), nil
}
