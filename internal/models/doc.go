// Package models ships the built-in example models: hand-written
// implementations of the model contract that a code generator would
// otherwise emit from an annotated struct. They double as the reference
// fixtures for the runtime's own tests.
package models
