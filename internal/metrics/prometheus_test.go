package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBatch(t *testing.T) {
	before := testutil.ToFloat64(BatchRecordsTotal.WithLabelValues("failed"))
	batchesBefore := testutil.ToFloat64(BatchesTotal.WithLabelValues("failed"))

	RecordBatch("failed", 3)

	assert.Equal(t, before+3, testutil.ToFloat64(BatchRecordsTotal.WithLabelValues("failed")))
	assert.Equal(t, batchesBefore+1, testutil.ToFloat64(BatchesTotal.WithLabelValues("failed")))
}

func TestRecordImport_Success(t *testing.T) {
	RecordImport("success", 1.5)

	assert.Greater(t, testutil.ToFloat64(LastSuccessfulImport), float64(0), "Should stamp last successful import")
}

func TestUpdateReferenceCounts(t *testing.T) {
	UpdateReferenceCounts(30, 450, 2, 1230)

	assert.Equal(t, float64(30), testutil.ToFloat64(ReferenceRowsLoaded.WithLabelValues("team")))
	assert.Equal(t, float64(1230), testutil.ToFloat64(ReferenceRowsLoaded.WithLabelValues("game")))
}
