package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(transitionCounter.WithLabelValues("confirm", "Delivering"))
	RecordTransition("confirm", "Delivering")
	RecordTransition("confirm", "Delivering")
	assert.Equal(t, before+2, testutil.ToFloat64(transitionCounter.WithLabelValues("confirm", "Delivering")))
}

func TestRecordTableRollback(t *testing.T) {
	before := testutil.ToFloat64(tableRollbackCounter.WithLabelValues("data/job_order.xlsx"))
	RecordTableRollback("data/job_order.xlsx")
	assert.Equal(t, before+1, testutil.ToFloat64(tableRollbackCounter.WithLabelValues("data/job_order.xlsx")))
}

func TestRecordTableCommit(t *testing.T) {
	RecordTableCommit("data/job_order.xlsx", 15*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(tableCommitHist))
}
