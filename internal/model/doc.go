// Package model defines the contract between the runtime and a user model:
// the static [Descriptor] a generator emits, the typed batched accessors of
// [GetSet], and the behavioral hooks of [Model]. The runtime never inspects
// a model beyond this surface.
//
// Hand-written models embed [Base] to pick up default implementations for
// the optional hooks and the scalar kinds they do not expose.
package model
