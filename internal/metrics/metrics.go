// Package metrics holds the prometheus collectors shared by the arena
// components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Remote apply sources
const (
	SourceReplica  = "replica"
	SourceSnapshot = "snapshot"
)

// Autosave results
const (
	ResultSaved  = "saved"
	ResultFailed = "failed"
	ResultLocal  = "local"
)

var (
	LocalEdits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codearena_local_edits_total",
		Help: "Local editor changes by authorization outcome",
	}, []string{"outcome"})

	RemoteApplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codearena_remote_applies_total",
		Help: "Trusted remote texts written to the editor by source",
	}, []string{"source"})

	RemoteDeferred = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codearena_remote_deferred_total",
		Help: "Replica updates deferred behind an in-flight writer",
	})

	EchoSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codearena_echo_suppressed_total",
		Help: "Editor change events ignored during a remote apply",
	})

	AutosaveWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codearena_autosave_writes_total",
		Help: "Snapshot writes by result",
	}, []string{"result"})

	PeerMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codearena_peer_messages_total",
		Help: "Mesh messages by direction",
	}, []string{"direction"})

	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codearena_submissions_total",
		Help: "Solution submissions by grading outcome",
	}, []string{"outcome"})
)

// ObserveLocalEdit counts an accepted or rejected local change
func ObserveLocalEdit(accepted bool) {
	if accepted {
		LocalEdits.WithLabelValues("accepted").Inc()
		return
	}
	LocalEdits.WithLabelValues("rejected").Inc()
}

// ObserveSubmission counts a graded submission
func ObserveSubmission(correct bool) {
	if correct {
		Submissions.WithLabelValues("correct").Inc()
		return
	}
	Submissions.WithLabelValues("incorrect").Inc()
}
