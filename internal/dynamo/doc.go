// Package dynamo provides the core primitives of the arena simulation.
//
// The package defines the value types and pure operations that every host
// (terminal, window, headless) shares:
//
//   - [Body]: a circular disc with position, velocity and pointer state
//   - [Bounds]: the fixed rectangular arena bodies move within
//   - [Resolve]: equal-mass elastic collision between two bodies
//   - [Surface]: the injected drawing capability (clear + fill circle)
//
// # Example
//
//	b := dynamo.NewBody(dynamo.Vec2{X: 60, Y: 60}, 50)
//	b = b.Press(dynamo.Vec2{X: 60, Y: 60})
//	b = b.Release(dynamo.Vec2{X: 160, Y: 110}, dynamo.ImpulseScale)
//	b = b.Advance(dynamo.DefaultBounds())
//
// # Thread Safety
//
// Body is a plain value. The sim package owns the only mutable
// collection of bodies and mutates it from a single goroutine.
package dynamo
