package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLocalEdit(t *testing.T) {
	accepted := testutil.ToFloat64(LocalEdits.WithLabelValues("accepted"))
	rejected := testutil.ToFloat64(LocalEdits.WithLabelValues("rejected"))

	ObserveLocalEdit(true)
	ObserveLocalEdit(false)
	ObserveLocalEdit(false)

	assert.Equal(t, accepted+1, testutil.ToFloat64(LocalEdits.WithLabelValues("accepted")))
	assert.Equal(t, rejected+2, testutil.ToFloat64(LocalEdits.WithLabelValues("rejected")))
}

func TestObserveSubmission(t *testing.T) {
	correct := testutil.ToFloat64(Submissions.WithLabelValues("correct"))

	ObserveSubmission(true)
	ObserveSubmission(false)

	assert.Equal(t, correct+1, testutil.ToFloat64(Submissions.WithLabelValues("correct")))
}
