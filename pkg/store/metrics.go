package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK    = "ok"
	statusMiss  = "miss"
	statusError = "error"
)

var opsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kestrel_store_ops_total",
		Help: "Total store operations, by operation and status",
	},
	[]string{"op", "status"},
)

func recordOp(op, status string) {
	opsTotal.WithLabelValues(op, status).Inc()
}
