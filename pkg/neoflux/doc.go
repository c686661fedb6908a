// Package neoflux implements a fine-grained reactive state engine.
//
// The engine is built from four primitives:
//
//   - Signal: a mutable value cell. Reading it inside a tracked context
//     subscribes the reader; writing it notifies subscribers when the value
//     actually changed.
//   - Memo: a lazily recomputed, cached derivation. Its dependency set is
//     rediscovered on every evaluation, so conditional reads work naturally.
//   - Effect: a side-effecting subscriber that runs immediately on creation
//     and re-runs when any tracked dependency changes. Effects may return a
//     Cleanup that runs before each re-run and on disposal.
//   - Owner: an ownership scope created with CreateRoot. Disposing an owner
//     tears down everything created inside it, children first, in reverse
//     creation order.
//
// Writes propagate in two phases. Staleness is pushed eagerly: a changed
// signal marks its subscribers dirty, memos forward the mark to theirs, and
// affected effects are queued (deduplicated by ID). Values are pulled lazily:
// when the queue flushes, each effect first refreshes the cells it read last
// time and re-runs only if one of them actually changed value. The flush
// happens when the outermost write or Batch finishes, so a group of writes
// is observed atomically and a diamond-shaped graph triggers each effect
// exactly once.
//
// All bookkeeping lives in a per-goroutine tracking context, so independent
// goroutines can run their own reactive graphs without locking against each
// other, and cells themselves are internally synchronized for the async
// helpers (resources, actions) that complete on background goroutines.
package neoflux
