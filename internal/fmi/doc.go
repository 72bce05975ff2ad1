// Package fmi defines the protocol-level types of the FMI 3.0 export
// runtime: instance lifecycle states, call statuses, event flags, and the
// variable metadata (causality, variability, value references) that the
// write-legality rules are derived from.
//
// The types here are pure data. The state machine that enforces them lives
// in [github.com/san-kum/gofmi/internal/instance].
package fmi
