// Package metrics 定义 Prometheus 指标，/metrics 暴露。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Prefix = "nimo_fab_"

var tableCommitHist = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    Prefix + "table_commit_seconds",
		Help:    "Time taken to write one table workbook on commit",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	},
	[]string{"table"},
)

var tableRollbackCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: Prefix + "table_rollbacks_total",
		Help: "Number of tables restored after a failed transaction commit",
	},
	[]string{"table"},
)

var transitionCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: Prefix + "order_transitions_total",
		Help: "Number of job order lifecycle transitions",
	},
	[]string{"event", "status"},
)

// RecordTableCommit 记录单表写入耗时
func RecordTableCommit(table string, duration time.Duration) {
	tableCommitHist.WithLabelValues(table).Observe(duration.Seconds())
}

// RecordTableRollback 记录一次表回滚
func RecordTableRollback(table string) {
	tableRollbackCounter.WithLabelValues(table).Inc()
}

// RecordTransition 记录一次状态变更
func RecordTransition(event, status string) {
	transitionCounter.WithLabelValues(event, status).Inc()
}
