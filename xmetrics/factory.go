package xmetrics

import (
	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// NewCounter creates a go-kit counter backed by a Prometheus counter vector
// registered with the given registerer.  If a collector with the same fully
// qualified name is already registered, the existing collector is reused
// rather than treated as an error.  Any other registration failure panics,
// as it indicates a programming defect such as an invalid metric name.
func NewCounter(r prometheus.Registerer, opts prometheus.CounterOpts) metrics.Counter {
	counterVec := prometheus.NewCounterVec(opts, []string{})

	if err := r.Register(counterVec); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			counterVec = already.ExistingCollector.(*prometheus.CounterVec)
		} else {
			panic(err)
		}
	}

	return gokitprometheus.NewCounter(counterVec)
}
