package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values for generation requests.
const (
	resultSuccess    = "success"
	resultBadRequest = "bad_request"
	resultFailure    = "failure"
)

// metrics holds the service collectors. Each Server owns a registry so
// several can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathplace_generation_requests_total",
				Help: "Total number of question generation requests",
			},
			[]string{"previous_answer", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mathplace_generation_duration_seconds",
				Help:    "Time spent generating a question",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),
	}
}

func previousAnswerLabel(p *string) string {
	if p == nil {
		return "none"
	}
	switch *p {
	case "correct", "incorrect", "dontknow":
		return *p
	default:
		return "other"
	}
}
