// Package analysis holds the pure computations of the diagnostic pipeline:
// batch aggregation, the shunt model, device-vs-reference comparison,
// anomaly classification, range optimization and the sweep fit.
//
// Every function here is a pure function of its inputs. There is no shared
// mutable state, so any number of channels can be analyzed in parallel with
// zero coordination.
package analysis
