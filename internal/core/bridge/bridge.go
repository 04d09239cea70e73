// Package bridge implements the cross-chain burn-and-mint transfer: burn on
// the source ledger, submit a message to the relay network, and on the
// destination chain authenticate the origin and mint. The burn is optimistic:
// once committed it is never rolled back, even if destination delivery fails
// permanently.
package bridge

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/fungible"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/ledger"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
)

var (
	// ErrInsufficientFeeBalance is returned when the bridge's balance in the
	// chosen fee token cannot cover the relay fee.
	ErrInsufficientFeeBalance = errors.New("insufficient fee token balance")

	// ErrUnauthorizedRelay is returned when an inbound message does not come
	// from the trusted relay entry point.
	ErrUnauthorizedRelay = errors.New("caller is not the relay entry point")

	// ErrUnknownSender is returned when an inbound message's sender does not
	// match the registered counterpart for its source chain.
	ErrUnknownSender = errors.New("message sender is not the registered counterpart")
)

// Bridge is the cross-chain capability of the asset entity. It shares the
// chain-state store (and therefore the asset ledger) with the entity's other
// capabilities.
type Bridge struct {
	store *state.Store
	relay Relayer
	log   *zap.Logger
	guard state.Guard

	// self is the asset entity's address; it is the Sender identity on
	// outbound messages and the mint/burn authority on the local ledger.
	self common.Address

	// relayEntry is the only caller allowed to deliver inbound messages.
	relayEntry common.Address

	localChain uint64
}

// New creates the bridge capability.
func New(store *state.Store, relay Relayer, self, relayEntry common.Address, localChain uint64, log *zap.Logger) *Bridge {
	return &Bridge{
		store:      store,
		relay:      relay,
		log:        log,
		self:       self,
		relayEntry: relayEntry,
		localChain: localChain,
	}
}

// Self returns the asset entity's address.
func (b *Bridge) Self() common.Address { return b.self }

// FundFees credits the bridge's balance of a fee token. Owner only.
func (b *Bridge) FundFees(caller, feeToken common.Address, amount *big.Int) error {
	view := b.store.View()
	if err := state.RequireRole(view, entry.RoleOwner, caller); err != nil {
		return errors.Wrap(err, "fund fees")
	}
	if err := fungible.Credit(view, feeToken, b.self, amount); err != nil {
		return err
	}
	return view.Commit()
}

// FeeBalance returns the bridge's balance of a fee token.
func (b *Bridge) FeeBalance(feeToken common.Address) (*big.Int, error) {
	return fungible.BalanceOf(b.store, feeToken, b.self)
}

// TransferCrossChain burns quantity of the asset from the caller, pays the
// relay fee from the bridge's fee balance, and submits the transfer message.
// The burn is committed before the message is handed to the relay; a failed
// submit or a lost message leaves it permanently executed.
func (b *Bridge) TransferCrossChain(caller, to common.Address, assetID, quantity *big.Int, auxData []byte, destChain uint64, feeToken common.Address) (common.Hash, error) {
	if err := b.guard.Enter(); err != nil {
		return common.Hash{}, err
	}
	defer b.guard.Exit()

	view := b.store.View()

	cp, err := counterpart(view, destChain)
	if err != nil {
		return common.Hash{}, err
	}

	uri, err := ledger.URI(view, assetID)
	if err != nil {
		return common.Hash{}, err
	}

	if err := ledger.Burn(view, caller, assetID, quantity); err != nil {
		return common.Hash{}, err
	}

	payload, err := EncodeTransfer(&TransferPayload{
		From:     caller,
		To:       to,
		AssetID:  assetID,
		Quantity: quantity,
		AuxData:  auxData,
		AssetURI: uri,
	})
	if err != nil {
		return common.Hash{}, err
	}

	msg := Message{
		SourceChain: b.localChain,
		DestChain:   destChain,
		Sender:      b.self,
		Payload:     payload,
		ExtraArgs:   cp.ExtraArgs,
	}

	fee, err := b.relay.EstimateFee(destChain, msg, feeToken)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "estimate relay fee")
	}
	if err := fungible.Debit(view, feeToken, b.self, fee); err != nil {
		if errors.Is(err, fungible.ErrInsufficientFunds) {
			return common.Hash{}, ErrInsufficientFeeBalance
		}
		return common.Hash{}, err
	}

	// The burn and fee debit must be durable before the message exists
	// anywhere outside this chain; a message without a committed burn would
	// mint unbacked supply on delivery.
	if err := view.Commit(); err != nil {
		return common.Hash{}, err
	}

	messageID, err := b.relay.Submit(destChain, msg, feeToken)
	if err != nil {
		// The burn stays executed, same as a message lost in transit.
		b.log.Error("cross-chain submit failed after burn",
			zap.Uint64("destChain", destChain),
			zap.String("asset", assetID.String()),
			zap.String("quantity", quantity.String()),
			zap.Error(err))
		return common.Hash{}, errors.Wrap(err, "submit cross-chain message")
	}

	b.log.Info("cross-chain transfer sent",
		zap.Stringer("messageId", messageID),
		zap.Uint64("destChain", destChain),
		zap.String("asset", assetID.String()),
		zap.String("quantity", quantity.String()),
		zap.String("fee", fee.String()))
	return messageID, nil
}

// Receive delivers an inbound cross-chain message. Only the relay entry
// point may call it; the source chain must be enabled and the message sender
// must match the registered counterpart. On success the carried burn is
// replayed as a mint to the payload recipient.
func (b *Bridge) Receive(caller common.Address, msg Message) error {
	if err := b.guard.Enter(); err != nil {
		return err
	}
	defer b.guard.Exit()

	if caller != b.relayEntry {
		return ErrUnauthorizedRelay
	}

	view := b.store.View()

	cp, err := counterpart(view, msg.SourceChain)
	if err != nil {
		return err
	}
	if msg.Sender != cp.Address {
		return ErrUnknownSender
	}

	p, err := DecodeTransfer(msg.Payload)
	if err != nil {
		return err
	}

	if err := ledger.Mint(view, p.To, p.AssetID, p.Quantity, p.AssetURI); err != nil {
		return err
	}

	if err := view.Commit(); err != nil {
		return err
	}

	b.log.Info("cross-chain transfer received",
		zap.Uint64("sourceChain", msg.SourceChain),
		zap.String("asset", p.AssetID.String()),
		zap.Stringer("to", p.To),
		zap.String("quantity", p.Quantity.String()))
	return nil
}
