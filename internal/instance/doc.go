// Package instance implements the FMI 3.0 model-instance runtime: the
// lifecycle state machine, the value-reference dispatch with its
// dirty-value cache, and the fixed-step engine that lets a Model-Exchange
// model be driven as a Co-Simulation slave.
//
// Calls into one instance are single-threaded and non-reentrant, as the
// standard mandates; the package performs no internal locking.
package instance
