package executor

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-token/internal/contract/common"
	"github.com/axiomesh/axiom-token/internal/contract/token"
	"github.com/axiomesh/axiom-token/internal/ledger"
	"github.com/axiomesh/axiom-token/pkg/loggers"
)

// Executor runs token operations one at a time against a Storage, providing
// the all-or-nothing guarantee: on any failure the operation's pending
// writes are reverted and no logs reach the sink.
type Executor struct {
	logger logrus.FieldLogger
	store  ledger.Storage
	sink   common.LogSink
}

// Option tweaks a new Executor.
type Option func(*Executor)

func WithLogSink(sink common.LogSink) Option {
	return func(e *Executor) {
		e.sink = sink
	}
}

func New(store ledger.Storage, opts ...Option) *Executor {
	e := &Executor{
		logger: loggers.Logger(loggers.Executor),
		store:  store,
		sink:   &loggingSink{logger: loggers.Logger(loggers.Executor)},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one operation atomically. from is the principal the host has
// authenticated; blockNumber is the current ledger sequence. The operation
// either commits fully (state finalised, logs flushed) or leaves the store
// untouched.
func (e *Executor) Run(method string, from ethcommon.Address, blockNumber uint64, op func(tok *token.Token) error) (err error) {
	e.store.SetSequence(blockNumber)
	snapshot := e.store.Snapshot()

	defer func() {
		if r := recover(); r != nil {
			e.store.RevertToSnapshot(snapshot)
			opCounter.WithLabelValues(method, statusFailed).Inc()
			err = errors.Errorf("operation %s panicked: %v", method, r)
			e.logger.WithField("method", method).Error(err)
		}
	}()

	logs := make([]common.Log, 0)
	tok := e.newToken(from, blockNumber, &logs)

	if err := op(tok); err != nil {
		e.store.RevertToSnapshot(snapshot)
		opCounter.WithLabelValues(method, statusFailed).Inc()
		e.logger.WithFields(logrus.Fields{
			"method": method,
			"from":   from.String(),
			"seq":    blockNumber,
		}).Warnf("operation aborted: %s", err)
		return err
	}

	if err := e.store.Finalise(); err != nil {
		e.store.RevertToSnapshot(snapshot)
		opCounter.WithLabelValues(method, statusFailed).Inc()
		return err
	}
	e.sink.Append(logs)
	opCounter.WithLabelValues(method, statusSuccess).Inc()
	return nil
}

// Query runs a read-only accessor. Writes the read path may stage (TTL
// bumps) are discarded instead of finalised.
func (e *Executor) Query(from ethcommon.Address, blockNumber uint64, query func(tok *token.Token) error) error {
	e.store.SetSequence(blockNumber)
	snapshot := e.store.Snapshot()
	defer e.store.RevertToSnapshot(snapshot)

	logs := make([]common.Log, 0)
	return query(e.newToken(from, blockNumber, &logs))
}

func (e *Executor) newToken(from ethcommon.Address, blockNumber uint64, logs *[]common.Log) *token.Token {
	logger := loggers.Logger(loggers.Token)
	tok := token.New(logger)
	tok.SetContext(&common.VMContext{
		StateAccount: ledger.NewStateAccount(e.store, ethcommon.HexToAddress(common.TokenContractAddr)),
		BlockNumber:  blockNumber,
		From:         from,
		CurrentLogs:  logs,
		Logger:       logger,
	})
	return tok
}

// loggingSink is the default sink: committed logs go to the module logger.
type loggingSink struct {
	logger logrus.FieldLogger
}

func (s *loggingSink) Append(logs []common.Log) {
	for _, l := range logs {
		s.logger.WithFields(logrus.Fields{
			"address": l.Address.String(),
			"topics":  l.Topics,
		}).Debug("event log")
	}
}

// CollectorSink accumulates committed logs in memory, append-only.
type CollectorSink struct {
	logs []common.Log
}

func NewCollectorSink() *CollectorSink {
	return &CollectorSink{}
}

func (s *CollectorSink) Append(logs []common.Log) {
	s.logs = append(s.logs, logs...)
}

func (s *CollectorSink) Logs() []common.Log {
	return s.logs
}
