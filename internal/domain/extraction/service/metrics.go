package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	extractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statement_extractions_total",
		Help: "Statement extractions by provider, acquisition method and winning strategy.",
	}, []string{"provider", "method", "strategy"})

	recordsExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statement_records_extracted_total",
		Help: "Transaction records recovered from statements, by provider.",
	}, []string{"provider"})
)
