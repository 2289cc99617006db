package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var storeOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "task_store_operations_total",
		Help: "Total number of task store operations issued by the lister",
	},
	[]string{"op", "outcome"},
)

func observeStoreOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	storeOperationsTotal.WithLabelValues(op, outcome).Inc()
}
