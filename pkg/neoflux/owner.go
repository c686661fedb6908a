package neoflux

import (
	"sync"
	"sync/atomic"
)

// ownedNode is a reactive primitive whose lifetime is bound to a scope.
// Signals, memos, and effects implement it; disposing a subscriber
// detaches it from every cell it reads, while disposing a signal only
// announces the end of its lifetime to observers.
type ownedNode interface {
	disposeNode()
}

// Owner is an ownership scope. Every signal, memo, and effect created
// while an owner is current belongs to it, and disposing the owner tears
// all of them down deterministically: child scopes first, then owned
// nodes, then registered cleanups, each group in reverse creation order so
// the most recently built thing is unwound first.
//
// Ownership is strictly one-directional. An owner holds its children and
// nodes; children keep only a plain parent pointer used for disposal and
// scope-value lookup, never a strong reference cycle.
type Owner struct {
	id uint64

	// parent is nil for a root scope.
	parent *Owner

	// children are nested scopes, in creation order.
	children   []*Owner
	childrenMu sync.Mutex

	// nodes are the signals, memos, and effects owned by this scope.
	nodes   []ownedNode
	nodesMu sync.Mutex

	// cleanups are functions registered via OnCleanup.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// values stores scope-local values set with Provide.
	values   map[any]any
	valuesMu sync.RWMutex

	// disposed flips exactly once.
	disposed atomic.Bool
}

// NewOwner creates a scope under parent. A nil parent creates a root.
// Most code should use CreateRoot instead, which also installs the scope
// as current for the duration of a function.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

// CreateRoot runs fn inside a fresh scope nested under the current one and
// returns fn's result. The dispose function handed to fn tears down
// everything created inside:
//
//	neoflux.CreateRoot(func(dispose func()) struct{} {
//	    count := neoflux.NewSignal(0)
//	    neoflux.CreateEffect(func() neoflux.Cleanup {
//	        fmt.Println(count.Get())
//	        return nil
//	    })
//	    defer dispose()
//	    ...
//	})
func CreateRoot[T any](fn func(dispose func()) T) T {
	owner := NewOwner(getCurrentOwner())
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	return fn(owner.Dispose)
}

// CurrentOwner returns the scope new nodes are adopted into, or nil when
// called outside any root. Long-lived helpers capture it at construction
// so work created later, possibly on another goroutine, still lands in the
// right scope.
func CurrentOwner() *Owner {
	return getCurrentOwner()
}

// ID returns the unique identifier for this owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the enclosing scope, or nil for a root.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has run.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// adopt registers a node for teardown when this scope is disposed.
func (o *Owner) adopt(n ownedNode) {
	if o.disposed.Load() {
		// The scope is already gone; detach immediately rather than leak
		// a live subscriber.
		n.disposeNode()
		return
	}
	o.nodesMu.Lock()
	defer o.nodesMu.Unlock()
	o.nodes = append(o.nodes, n)
}

// OnCleanup registers fn to run when this owner is disposed. Registering
// on an already-disposed owner runs fn immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}
	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// OnCleanup registers fn on the current owner. Without a current owner the
// function is kept alive for the life of the process, which matches what a
// cleanup with no scope to end it means; a debug log flags the likely
// mistake.
func OnCleanup(fn func()) {
	if owner := getCurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
		return
	}
	debugf("OnCleanup called outside any root; cleanup will never run")
}

// Provide stores a scope-local value, visible to this owner and every
// descendant via Lookup.
func (o *Owner) Provide(key, value any) {
	o.valuesMu.Lock()
	defer o.valuesMu.Unlock()
	if o.values == nil {
		o.values = make(map[any]any)
	}
	o.values[key] = value
}

// Lookup finds a scope-local value, walking up through parent scopes.
func (o *Owner) Lookup(key any) (any, bool) {
	for cur := o; cur != nil; cur = cur.parent {
		cur.valuesMu.RLock()
		v, ok := cur.values[key]
		cur.valuesMu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Dispose tears down this scope: children in reverse creation order, then
// owned memos and effects in reverse creation order, then cleanups in
// reverse registration order. Every owned subscriber is detached from
// every cell it subscribed to; nothing inside the scope fires again.
// Dispose is idempotent.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := o.children
	o.children = nil
	o.childrenMu.Unlock()
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.nodesMu.Lock()
	nodes := o.nodes
	o.nodes = nil
	o.nodesMu.Unlock()
	for i := len(nodes) - 1; i >= 0; i-- {
		nodes[i].disposeNode()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.valuesMu.Lock()
	o.values = nil
	o.valuesMu.Unlock()

	emit(Event{Kind: KindDispose, NodeID: o.id})
	debugf("owner disposed", "id", o.id)
}
