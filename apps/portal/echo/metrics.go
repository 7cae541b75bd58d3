package echoapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/masomo-portal/core/portal"
)

// Metrics counts page resolutions & logins. A nil *Metrics records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
	logins      *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "masomo",
				Subsystem: "portal",
				Name:      "page_resolutions_total",
				Help:      "Rendered pages by role and resolved page key.",
			},
			[]string{"role", "page"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "masomo",
				Subsystem: "portal",
				Name:      "page_fallbacks_total",
				Help:      "Page keys that fell back to the role dashboard.",
			},
			[]string{"role"},
		),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "masomo",
				Subsystem: "portal",
				Name:      "logins_total",
				Help:      "Login attempts by result.",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.resolutions,
		m.fallbacks,
		m.logins,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeResolve(sess portal.Session, page portal.Page) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(sess.Role.String(), page.Key).Inc()
	if page.Key != sess.ActivePage {
		m.fallbacks.WithLabelValues(sess.Role.String()).Inc()
	}
}

func (m *Metrics) observeLogin(ok bool) {
	if m == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	m.logins.WithLabelValues(result).Inc()
}
