package executor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

var opCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "axiom_token",
	Subsystem: "executor",
	Name:      "operations_total",
	Help:      "Number of executed token operations, by method and status",
}, []string{"method", "status"})
