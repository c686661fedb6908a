package neoflux

// Listener is anything that can be notified when a cell it reads changes.
// Memos and effects implement it; memos forward the mark to their own
// subscribers, effects queue themselves for the next flush.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// For memos this invalidates the cached value. For effects this
	// schedules a re-run on the current flush.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication in the pending queue.
	ID() uint64
}

// dependent is a listener that keeps an explicit source list so its
// dependency edges can be torn down and rediscovered on each run.
type dependent interface {
	Listener
	addSource(source *cellBase)
}

// scheduled is a unit of deferred work queued by the flush machinery.
type scheduled interface {
	ID() uint64
	runScheduled()
}

// Cleanup is a function returned by an effect body to release resources.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()
