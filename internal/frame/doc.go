// Package frame provides the per-frame callback loop shared by every animator.
//
// A [Loop] plays the role of the display refresh callback: hosts call
// [Loop.Dispatch] once per refresh (a bubbletea tick, a raylib frame, a
// headless render step) or let [Loop.Run] drive it from a ticker.
//
//   - [Scheduler]: start/cancel contract consumed by animators
//   - [Loop]: ordered registry of callbacks, dispatched on the host goroutine
//
// # Ordering
//
// Callbacks run sequentially in registration order. A slow callback never
// causes ticks to queue; the next dispatch simply happens later.
package frame
