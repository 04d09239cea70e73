// Package oracle implements the request/response correlator for asynchronous
// off-chain computation. A correlator allows at most one in-flight request —
// one total in strict mode, one per asset key in keyed mode — and applies a
// response to chain state exactly once, dropping anything stale, cancelled,
// or unknown.
package oracle

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/entry"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/keylet"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/state"
)

var (
	// ErrRequestInFlight is returned when a request is issued while one is
	// already outstanding for the same slot. Retryable after fulfillment or
	// cancellation.
	ErrRequestInFlight = errors.New("a request is already in flight")

	// ErrNoRequestInFlight is returned when cancelling with nothing pending.
	ErrNoRequestInFlight = errors.New("no request in flight")

	// ErrUnauthorizedOracle is returned when a fulfillment does not come
	// from the oracle network's trusted entry point.
	ErrUnauthorizedOracle = errors.New("caller is not the oracle entry point")

	// ErrOracleError is returned when the oracle reports a non-empty error
	// payload; the payload is surfaced verbatim in the wrapping message.
	ErrOracleError = errors.New("oracle returned an error")
)

// Mode selects how many requests a correlator may have outstanding.
type Mode int

const (
	// Strict allows one outstanding request for the whole correlator.
	Strict Mode = iota
	// Keyed allows one outstanding request per asset key.
	Keyed
)

// ApplyFunc consumes a verified response inside the fulfillment call's
// atomic view. pending identifies what the response was requested for.
type ApplyFunc func(v state.LedgerView, pending *entry.PendingRequestData, response []byte) error

// Correlator tracks outstanding oracle requests and routes responses.
type Correlator struct {
	store  *state.Store
	client Client
	log    *zap.Logger

	// self namespaces this correlator's markers in shared state.
	self common.Address

	// oracleEntry is the only caller allowed to deliver fulfillments.
	oracleEntry common.Address

	mode  Mode
	apply ApplyFunc
}

// New creates a correlator.
func New(store *state.Store, client Client, self, oracleEntry common.Address, mode Mode, apply ApplyFunc, log *zap.Logger) *Correlator {
	return &Correlator{
		store:       store,
		client:      client,
		log:         log,
		self:        self,
		oracleEntry: oracleEntry,
		mode:        mode,
		apply:       apply,
	}
}

// slotKey normalizes the marker key for this correlator's mode.
func (c *Correlator) slotKey(key *big.Int) *big.Int {
	if c.mode == Strict {
		return nil
	}
	return key
}

// Request issues one oracle job for the given key. The caller must hold the
// owner or automation role. Fails with ErrRequestInFlight while a request
// for the same slot is outstanding.
func (c *Correlator) Request(caller common.Address, key *big.Int, recipient common.Address, job JobRequest) (common.Hash, error) {
	view := c.store.View()

	if err := state.RequireRole(view, entry.RoleOwner, caller); err != nil {
		if automationErr := state.RequireRole(view, entry.RoleAutomation, caller); automationErr != nil {
			return common.Hash{}, errors.Wrap(state.ErrUnauthorized, "request refresh")
		}
	}

	slot := keylet.PendingRequest(c.self, c.slotKey(key))
	exists, err := view.Exists(slot)
	if err != nil {
		return common.Hash{}, err
	}
	if exists {
		return common.Hash{}, ErrRequestInFlight
	}

	requestID, err := c.client.SubmitJob(job)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "submit oracle job")
	}

	pending := &entry.PendingRequestData{
		RequestID: requestID,
		AssetID:   key,
		Recipient: recipient,
	}
	if err := view.Insert(slot, entry.SerializePendingRequest(pending)); err != nil {
		return common.Hash{}, err
	}
	// Index the request id so the fulfillment can find its slot.
	if err := view.Insert(keylet.RequestIndex(c.self, requestID), slot.Key[:]); err != nil {
		return common.Hash{}, err
	}

	if err := view.Commit(); err != nil {
		return common.Hash{}, err
	}

	c.log.Info("oracle request issued",
		zap.Stringer("requestId", requestID),
		zap.String("key", keyString(key)))
	return requestID, nil
}

// Cancel clears the outstanding marker for the given key. Owner only. The
// oracle network may still deliver a late response, which Fulfill will then
// silently drop.
func (c *Correlator) Cancel(caller common.Address, key *big.Int) error {
	view := c.store.View()

	if err := state.RequireRole(view, entry.RoleOwner, caller); err != nil {
		return errors.Wrap(err, "cancel request")
	}

	slot := keylet.PendingRequest(c.self, c.slotKey(key))
	data, err := view.Read(slot)
	if err != nil {
		return err
	}
	if data == nil {
		return ErrNoRequestInFlight
	}
	pending, err := entry.ParsePendingRequest(data)
	if err != nil {
		return err
	}

	if err := view.Erase(slot); err != nil {
		return err
	}
	if err := view.Erase(keylet.RequestIndex(c.self, pending.RequestID)); err != nil {
		return err
	}
	if err := view.Commit(); err != nil {
		return err
	}

	c.log.Info("oracle request cancelled", zap.Stringer("requestId", pending.RequestID))
	return nil
}

// Fulfill delivers an oracle response. Only the oracle entry point may call
// it. A non-empty error payload fails the call loudly; a request id that no
// longer matches an outstanding marker is dropped without touching state.
func (c *Correlator) Fulfill(caller common.Address, requestID common.Hash, response, errPayload []byte) error {
	if caller != c.oracleEntry {
		return ErrUnauthorizedOracle
	}
	if len(errPayload) > 0 {
		return errors.Wrapf(ErrOracleError, "%s", errPayload)
	}

	view := c.store.View()

	indexKey := keylet.RequestIndex(c.self, requestID)
	slotRef, err := view.Read(indexKey)
	if err != nil {
		return err
	}
	if slotRef == nil {
		// Stale or cancelled request.
		c.log.Debug("dropping unmatched fulfillment", zap.Stringer("requestId", requestID))
		return nil
	}

	var slot keylet.Keylet
	slot.Type = entry.TypePendingRequest
	copy(slot.Key[:], slotRef)

	data, err := view.Read(slot)
	if err != nil {
		return err
	}
	if data == nil {
		// Orphaned index; drop it.
		if err := view.Erase(indexKey); err != nil {
			return err
		}
		return view.Commit()
	}
	pending, err := entry.ParsePendingRequest(data)
	if err != nil {
		return err
	}
	if pending.RequestID != requestID {
		// The slot has been re-used by a newer request.
		c.log.Debug("dropping superseded fulfillment", zap.Stringer("requestId", requestID))
		return nil
	}

	if err := c.apply(view, pending, response); err != nil {
		return err
	}

	if err := view.Erase(slot); err != nil {
		return err
	}
	if err := view.Erase(indexKey); err != nil {
		return err
	}
	if err := view.Commit(); err != nil {
		return err
	}

	c.log.Info("oracle request fulfilled", zap.Stringer("requestId", requestID))
	return nil
}

func keyString(key *big.Int) string {
	if key == nil {
		return ""
	}
	return key.String()
}
