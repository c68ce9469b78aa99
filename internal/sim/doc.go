// Package sim runs the arena: a World of bodies, the InputController that
// turns pointer gestures into impulses, and the Scheduler that drives frames.
//
// A frame clears the surface, resolves every body pair once in index order,
// then draws and advances each body. Pointer events may be published from
// any goroutine; they are queued and applied at the start of the next
// [Scheduler.Step], so body state is only ever touched by the goroutine
// that steps the scheduler.
//
// # Lifecycle
//
//	world, _ := sim.NewWorld(bounds, bodies, surface, painter)
//	sched := sim.NewScheduler(world, sim.NewInputController(world, 100))
//	sched.Attach(hub)
//	err := sched.Run(ctx, sim.NewRealtimeClock(60), 0)
//
// Run stops the scheduler on return, which releases every attached
// pointer listener. Stop may be called from any goroutine.
package sim
