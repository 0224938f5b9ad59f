package gammaReThetatSST

import (
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type Option func(m *Model)

// WithLogger replaces the standard logrus logger
func WithLogger(entry *log.Entry) Option {
	return func(m *Model) {
		m.log = entry
	}
}

// WithRegisterer exports the equilibrium non convergence counter
func WithRegisterer(reg prometheus.Registerer, instance string) Option {
	return func(m *Model) {
		m.registerer = reg
		m.instance = instance
	}
}

// WithProcLimit caps the number of goroutines used for per cell passes,
// zero uses one per CPU
func WithProcLimit(procLimit int) Option {
	return func(m *Model) {
		m.procLimit = procLimit
	}
}
