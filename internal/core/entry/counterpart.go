package entry

import (
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrMalformedCounterpart is returned when a counterpart entry cannot be parsed.
var ErrMalformedCounterpart = errors.New("malformed counterpart entry")

// CounterpartData records the bridge contract on a remote chain and the
// message-encoding parameters to use when sending to it. A missing entry
// means the chain is disabled.
type CounterpartData struct {
	Address   common.Address
	ExtraArgs []byte
}

// SerializeCounterpart encodes a counterpart entry.
// Layout: 20-byte address | 4-byte big-endian extra-args length | extra args.
func SerializeCounterpart(c *CounterpartData) []byte {
	out := make([]byte, 0, common.AddressLength+4+len(c.ExtraArgs))
	out = append(out, c.Address.Bytes()...)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(c.ExtraArgs)))
	out = append(out, lenBuf[:]...)
	out = append(out, c.ExtraArgs...)
	return out
}

// ParseCounterpart decodes a counterpart entry.
func ParseCounterpart(data []byte) (*CounterpartData, error) {
	if len(data) < common.AddressLength+4 {
		return nil, ErrMalformedCounterpart
	}
	c := &CounterpartData{}
	c.Address = common.BytesToAddress(data[:common.AddressLength])
	extraLen := binary.BigEndian.Uint32(data[common.AddressLength : common.AddressLength+4])
	rest := data[common.AddressLength+4:]
	if uint32(len(rest)) != extraLen {
		return nil, ErrMalformedCounterpart
	}
	if extraLen > 0 {
		c.ExtraArgs = append([]byte(nil), rest...)
	}
	return c, nil
}
