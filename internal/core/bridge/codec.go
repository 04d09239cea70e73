package bridge

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// TransferPayload is the decoded body of a cross-chain transfer message:
// the burn executed on the source chain that the destination replays as a
// mint.
type TransferPayload struct {
	From     common.Address
	To       common.Address
	AssetID  *big.Int
	Quantity *big.Int
	AuxData  []byte
	AssetURI string
}

var transferArguments abi.Arguments

func init() {
	addressType, err := abi.NewType("address", "", nil)
	if err != nil {
		panic(err)
	}
	uint256Type, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	bytesType, err := abi.NewType("bytes", "", nil)
	if err != nil {
		panic(err)
	}
	stringType, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(err)
	}
	transferArguments = abi.Arguments{
		{Name: "from", Type: addressType},
		{Name: "to", Type: addressType},
		{Name: "assetId", Type: uint256Type},
		{Name: "quantity", Type: uint256Type},
		{Name: "auxData", Type: bytesType},
		{Name: "assetUri", Type: stringType},
	}
}

// EncodeTransfer ABI-encodes a transfer payload.
func EncodeTransfer(p *TransferPayload) ([]byte, error) {
	data, err := transferArguments.Pack(p.From, p.To, p.AssetID, p.Quantity, p.AuxData, p.AssetURI)
	if err != nil {
		return nil, errors.Wrap(err, "encode transfer payload")
	}
	return data, nil
}

// DecodeTransfer decodes an ABI-encoded transfer payload.
func DecodeTransfer(data []byte) (*TransferPayload, error) {
	values, err := transferArguments.Unpack(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode transfer payload")
	}
	if len(values) != 6 {
		return nil, errors.Errorf("decode transfer payload: got %d fields, want 6", len(values))
	}

	p := &TransferPayload{}
	var ok bool
	if p.From, ok = values[0].(common.Address); !ok {
		return nil, errors.New("decode transfer payload: bad from field")
	}
	if p.To, ok = values[1].(common.Address); !ok {
		return nil, errors.New("decode transfer payload: bad to field")
	}
	if p.AssetID, ok = values[2].(*big.Int); !ok {
		return nil, errors.New("decode transfer payload: bad assetId field")
	}
	if p.Quantity, ok = values[3].(*big.Int); !ok {
		return nil, errors.New("decode transfer payload: bad quantity field")
	}
	if p.AuxData, ok = values[4].([]byte); !ok {
		return nil, errors.New("decode transfer payload: bad auxData field")
	}
	if p.AssetURI, ok = values[5].(string); !ok {
		return nil, errors.New("decode transfer payload: bad assetUri field")
	}
	return p, nil
}
