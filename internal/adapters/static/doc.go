// Package static provides table-driven adapters for the acquisition ports.
// They replay configured samples and reference currents, which is enough for
// replaying captured traces, for dry runs against a planned channel map, and
// for tests.
package static
