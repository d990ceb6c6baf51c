package pager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeHit  = "hit"
	outcomeMiss = "miss"
)

var acquiresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kestrel_pager_acquires_total",
		Help: "Total page acquisitions, by outcome",
	},
	[]string{"outcome"},
)

func recordAcquire(outcome string) {
	acquiresTotal.WithLabelValues(outcome).Inc()
}
