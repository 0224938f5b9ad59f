package equilibrium

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// NewNonConvergenceCounter registers a counter of cells whose ReThetat
// iteration hit the cap, labelled by model instance. An existing counter with
// the same label is reused.
func NewNonConvergenceCounter(reg prometheus.Registerer, instance string) (c prometheus.Counter, err error) {
	c = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "gotransition",
		Subsystem:   "equilibrium",
		Name:        "nonconverged_cells_total",
		Help:        "Cells where the equilibrium ReThetat iteration reached the iteration cap.",
		ConstLabels: prometheus.Labels{"instance": instance},
	})
	if err = reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return
}
