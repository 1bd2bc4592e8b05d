package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// resolutionAttempts counts answers produced by source (knowledge_base, ai, error).
	resolutionAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpdesk_resolution_attempts_total",
		Help: "Resolution attempts by solution source",
	}, []string{"source"})

	aiLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "helpdesk_ai_resolve_duration_seconds",
		Help:    "AI resolver call duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
	})

	// feedbackTotal counts user feedback by solution type and outcome.
	feedbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpdesk_feedback_total",
		Help: "User feedback by solution type and outcome",
	}, []string{"solution_type", "outcome"})

	escalationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpdesk_escalations_total",
		Help: "Incidents escalated to a technician by reason",
	}, []string{"reason"})

	learnedEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpdesk_learned_entries_total",
		Help: "Knowledge entries written from confirmed AI answers by result",
	}, []string{"result"})
)
