package bridge

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/keylet"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
)

var (
	// ErrSelfChain is returned when the local chain is enabled as its own
	// destination.
	ErrSelfChain = errors.New("cannot enable the local chain as a destination")

	// ErrChainNotEnabled is returned when a chain has no counterpart record.
	ErrChainNotEnabled = errors.New("chain not enabled")
)

// EnableChain records the counterpart bridge for a destination chain,
// overwriting any prior record. Owner only.
func (b *Bridge) EnableChain(caller common.Address, chainSelector uint64, counterpart common.Address, extraArgs []byte) error {
	if chainSelector == b.localChain {
		return ErrSelfChain
	}

	view := b.store.View()
	if err := state.RequireRole(view, entry.RoleOwner, caller); err != nil {
		return errors.Wrap(err, "enable chain")
	}

	data := entry.SerializeCounterpart(&entry.CounterpartData{
		Address:   counterpart,
		ExtraArgs: extraArgs,
	})
	if err := state.Write(view, keylet.Counterpart(chainSelector), data); err != nil {
		return err
	}
	if err := view.Commit(); err != nil {
		return err
	}

	b.log.Info("chain enabled",
		zap.Uint64("chainSelector", chainSelector),
		zap.Stringer("counterpart", counterpart))
	return nil
}

// DisableChain removes a destination chain's counterpart record. Owner only.
func (b *Bridge) DisableChain(caller common.Address, chainSelector uint64) error {
	view := b.store.View()
	if err := state.RequireRole(view, entry.RoleOwner, caller); err != nil {
		return errors.Wrap(err, "disable chain")
	}

	k := keylet.Counterpart(chainSelector)
	exists, err := view.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return ErrChainNotEnabled
	}
	if err := view.Erase(k); err != nil {
		return err
	}
	if err := view.Commit(); err != nil {
		return err
	}

	b.log.Info("chain disabled", zap.Uint64("chainSelector", chainSelector))
	return nil
}

// counterpart reads the counterpart record for a chain, failing when the
// chain is not enabled.
func counterpart(v state.Reader, chainSelector uint64) (*entry.CounterpartData, error) {
	data, err := v.Read(keylet.Counterpart(chainSelector))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrChainNotEnabled
	}
	return entry.ParseCounterpart(data)
}
