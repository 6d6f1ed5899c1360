package common

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-token/internal/ledger"
)

const (
	// ZeroAddress is a special address, no one has control
	ZeroAddress = "0x0000000000000000000000000000000000000000"

	// TokenContractAddr is the address the token contract state lives under
	TokenContractAddr = "0x0000000000000000000000000000000000001002"
)

var ErrAuthorizationFailed = errors.New("caller is not the required principal")

// Log is one event emitted by a contract during an operation. The executor
// flushes collected logs to the sink only when the operation succeeds.
type Log struct {
	Address ethcommon.Address
	Topics  []ethcommon.Hash
	Data    []byte
}

// LogSink receives the logs of a committed operation, append-only.
type LogSink interface {
	Append(logs []Log)
}

// VMContext carries everything one contract call may touch: the contract's
// state slice, the current ledger sequence number, the authenticated caller
// and the log collector. A fresh context is built per call; contracts hold no
// state across calls.
type VMContext struct {
	StateAccount *ledger.StateAccount
	// BlockNumber is the host's monotonically increasing ledger sequence,
	// used for allowance expiration and TTL bookkeeping.
	BlockNumber uint64
	// From is the principal the host has already authenticated.
	From        ethcommon.Address
	CurrentLogs *[]Log
	Logger      logrus.FieldLogger
}

// RequireAuth succeeds only if the given principal is the authenticated
// caller of this operation. The host proves control of From before the call
// ever reaches a contract, so an equality check is all that is left here.
func (ctx *VMContext) RequireAuth(principal ethcommon.Address) error {
	if principal != ctx.From {
		return errors.Wrapf(ErrAuthorizationFailed, "need %s, caller is %s", principal, ctx.From)
	}
	return nil
}

// SystemContract must be implemented by all native contracts.
type SystemContract interface {
	SetContext(*VMContext)
}
