/*
Package xmetrics provides the small metrics interfaces consumed by this
module's instrumentation decorators, together with a factory for building
go-kit metrics backed by Prometheus.  Decorators depend only on the interfaces
in this package, so any go-kit or Prometheus metric satisfies them.
*/
package xmetrics
