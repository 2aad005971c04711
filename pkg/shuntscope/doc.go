// Package shuntscope is the embeddable diagnostic engine for shunt-based
// current sensing. Create an instance with New(), then either drive a single
// run with RunOnce() or use Start()/Stop() for a supervised instance that can
// re-run on demand (for example from the config watcher plugin).
//
// Acquisition, reference signals, and range catalogs are pluggable: provide
// implementations via WithSampleSource, WithReferenceProvider, and
// WithRangeCatalog. Rendered reports go to the sinks registered with
// WithReportSink.
package shuntscope
