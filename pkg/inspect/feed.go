package inspect

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/neoflux-dev/neoflux/pkg/neoflux"
)

// Node is one reactive primitive in the snapshot.
type Node struct {
	ID      uint64   `json:"id"`
	Kind    string   `json:"kind"`
	Name    string   `json:"name,omitempty"`
	Sources []uint64 `json:"sources,omitempty"`
	// Activity counts writes (signals) or runs (memos, effects).
	Activity uint64 `json:"activity"`
}

// Snapshot is the full graph view served by /api/snapshot.
type Snapshot struct {
	TakenAt time.Time `json:"takenAt"`
	Nodes   []Node    `json:"nodes"`
	Flushes uint64    `json:"flushes"`
}

// wireEvent is the JSON shape streamed over /api/events.
type wireEvent struct {
	Kind       string   `json:"kind"`
	NodeID     uint64   `json:"nodeId,omitempty"`
	Name       string   `json:"name,omitempty"`
	Sources    []uint64 `json:"sources,omitempty"`
	DurationNs int64    `json:"durationNs,omitempty"`
	Count      int      `json:"count,omitempty"`
	Timestamp  int64    `json:"ts"`
}

// Feed is a neoflux.Observer that maintains a live model of the reactive
// graph and broadcasts runtime events to connected inspector clients.
// Install it with neoflux.SetObserver (or alongside metrics through
// observe.Multi).
type Feed struct {
	mu      sync.RWMutex
	nodes   map[uint64]*Node
	flushes uint64

	hub *hub
}

// NewFeed creates an empty feed. Nodes appear as their creation events
// arrive, so install the feed before building the graph you want to
// inspect.
func NewFeed() *Feed {
	return &Feed{
		nodes: make(map[uint64]*Node),
		hub:   newHub(),
	}
}

// ReactiveEvent implements neoflux.Observer.
func (f *Feed) ReactiveEvent(ev neoflux.Event) {
	f.mu.Lock()
	switch ev.Kind {
	case neoflux.KindSignalCreate:
		f.nodes[ev.NodeID] = &Node{ID: ev.NodeID, Kind: "signal", Name: ev.Name}
	case neoflux.KindMemoCreate:
		f.nodes[ev.NodeID] = &Node{ID: ev.NodeID, Kind: "memo", Name: ev.Name}
	case neoflux.KindEffectCreate:
		f.nodes[ev.NodeID] = &Node{ID: ev.NodeID, Kind: "effect", Name: ev.Name}
	case neoflux.KindSignalWrite:
		if n := f.nodes[ev.NodeID]; n != nil {
			n.Activity++
			if n.Name == "" {
				n.Name = ev.Name
			}
		}
	case neoflux.KindMemoRecompute, neoflux.KindEffectRun:
		if n := f.nodes[ev.NodeID]; n != nil {
			n.Activity++
			n.Sources = ev.Sources
			if n.Name == "" {
				n.Name = ev.Name
			}
		}
	case neoflux.KindFlush:
		f.flushes++
	case neoflux.KindDispose:
		delete(f.nodes, ev.NodeID)
	}
	f.mu.Unlock()

	f.broadcast(ev)
}

// Snapshot returns the current graph model, nodes ordered by ID.
func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	nodes := make([]Node, 0, len(f.nodes))
	for _, n := range f.nodes {
		nodes = append(nodes, *n)
	}
	flushes := f.flushes
	f.mu.RUnlock()

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return Snapshot{TakenAt: time.Now(), Nodes: nodes, Flushes: flushes}
}

func (f *Feed) broadcast(ev neoflux.Event) {
	if !f.hub.hasClients() {
		return
	}
	payload, err := json.Marshal(wireEvent{
		Kind:       ev.Kind.String(),
		NodeID:     ev.NodeID,
		Name:       ev.Name,
		Sources:    ev.Sources,
		DurationNs: ev.Duration.Nanoseconds(),
		Count:      ev.Count,
		Timestamp:  time.Now().UnixNano(),
	})
	if err != nil {
		return
	}
	f.hub.broadcast(ev.Kind.String(), payload)
}
