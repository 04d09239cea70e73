package coretest

import (
	"encoding/binary"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/oracle"
)

// OracleJob is one captured job submission with its assigned request id.
type OracleJob struct {
	ID  common.Hash
	Req oracle.JobRequest
}

// OracleNet is a fake oracle network. It captures submitted jobs and assigns
// sequential request ids; the test fulfills them explicitly.
type OracleNet struct {
	mu       sync.Mutex
	identity common.Address
	seq      uint64
	jobs     []OracleJob
}

// NewOracleNet creates a fake oracle network with its own entry-point
// identity.
func NewOracleNet() *OracleNet {
	return &OracleNet{identity: Addr("oracle-network")}
}

// Identity returns the network's trusted fulfillment address.
func (o *OracleNet) Identity() common.Address { return o.identity }

// SubmitJob records the job and returns a fresh request id.
func (o *OracleNet) SubmitJob(req oracle.JobRequest) (common.Hash, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seq++
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], o.seq)
	id := common.BytesToHash(crypto.Keccak256([]byte("oracle-request"), seed[:]))
	o.jobs = append(o.jobs, OracleJob{ID: id, Req: req})
	return id, nil
}

// Jobs returns a copy of all captured submissions.
func (o *OracleNet) Jobs() []OracleJob {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]OracleJob, len(o.jobs))
	copy(out, o.jobs)
	return out
}

// LastJob returns the most recent submission.
func (o *OracleNet) LastJob() OracleJob {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.jobs[len(o.jobs)-1]
}

// Fulfill delivers a response for the given request under the network's
// identity.
func (o *OracleNet) Fulfill(c *oracle.Correlator, requestID common.Hash, response, errPayload []byte) error {
	return c.Fulfill(o.identity, requestID, response, errPayload)
}
