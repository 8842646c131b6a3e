package observability

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/resonanceenergy/ncc/internal/meta"
	"github.com/resonanceenergy/ncc/internal/verify"
)

// Metrics holds the collectors for one registry.
type Metrics struct {
	BuildInfo    *prometheus.GaugeVec
	VerifyChecks *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ncc",
				Name:      "build_info",
				Help:      "Module metadata; always 1.",
			},
			[]string{"version", "author", "generated_by"},
		),
		VerifyChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ncc",
				Subsystem: "verify",
				Name:      "checks_total",
				Help:      "Metadata verification checks by marker and result.",
			},
			[]string{"marker", "result"},
		),
	}
}

// Register adds the collectors to reg and sets the build info series. When reg
// already holds equivalent collectors, m switches to those so recordings land
// in the registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	buildInfo, err := registerOrExisting(reg, m.BuildInfo)
	if err != nil {
		return err
	}
	verifyChecks, err := registerOrExisting(reg, m.VerifyChecks)
	if err != nil {
		return err
	}
	m.BuildInfo = buildInfo
	m.VerifyChecks = verifyChecks
	m.BuildInfo.WithLabelValues(meta.Version, meta.Author, meta.GeneratedBy).Set(1)
	return nil
}

func registerOrExisting[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return c, err
	}
	existing, ok := already.ExistingCollector.(C)
	if !ok {
		return c, fmt.Errorf("collector already registered with type %T", already.ExistingCollector)
	}
	return existing, nil
}

func (m *Metrics) RecordReport(report verify.Report) {
	for _, c := range report.Checks {
		m.VerifyChecks.WithLabelValues(c.Marker, c.Result()).Inc()
	}
}
