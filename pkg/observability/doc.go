/*
Package observability turns engine lifecycle hooks into Prometheus metrics.

Metrics registers its collectors on a caller-supplied registerer, so tests and
embedders can use their own registry. Chain combines several hook sets, e.g.
metrics plus an audit log.
*/
package observability
