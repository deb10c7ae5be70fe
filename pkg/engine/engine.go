// Package engine provides the high-level, embedded interface for ArqDB.
//
// It manages a registry of named in-memory graphs and guards each one with
// an exclusive-access lock. The underlying graph.Graph performs no locking
// of its own, so the engine is the synchronization boundary: all access
// through Engine methods is safe for concurrent use.
//
// Basic usage:
//
//	eng, err := engine.Open(engine.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	eng.CreateGraph("social")
//	idx, _ := eng.AddNode("social", graph.Text("alice"))
package engine

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/btree"

	"github.com/arqdb/arqdb/pkg/graph"
	"github.com/arqdb/arqdb/pkg/metrics"
)

// Sentinel errors returned by Engine operations.
var (
	// ErrGraphExists indicates a CreateGraph call with a name already in use.
	ErrGraphExists = errors.New("engine: graph already exists")

	// ErrGraphNotFound indicates an operation referenced an unknown graph name.
	ErrGraphNotFound = errors.New("engine: graph not found")

	// ErrNodeOutOfRange indicates a node index outside the graph's current range.
	ErrNodeOutOfRange = errors.New("engine: node index out of range")

	// ErrTooManyGraphs indicates the MaxGraphs limit was reached.
	ErrTooManyGraphs = errors.New("engine: graph limit reached")

	// ErrEmptyName indicates a graph operation with an empty name.
	ErrEmptyName = errors.New("engine: graph name is empty")
)

// Options configures the behavior of the Engine.
type Options struct {
	// MaxGraphs caps the number of named graphs the engine will hold.
	// Set to 0 for no limit.
	MaxGraphs int
}

// DefaultOptions returns a standard configuration suitable for most use
// cases: no graph limit.
func DefaultOptions() Options {
	return Options{}
}

// GraphInfo models the public-facing information about a named graph,
// intended for serialization in API responses.
type GraphInfo struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	CreatedAt time.Time `json:"created_at"`
}

// graphEntry is a registry slot: the graph plus its identity and its
// exclusive-access guard. The graph.Graph itself is unsynchronized, so
// every access must hold mu.
type graphEntry struct {
	name      string
	id        string
	createdAt time.Time

	mu sync.Mutex
	g  *graph.Graph
}

func (e *graphEntry) info() GraphInfo {
	return GraphInfo{
		Name:      e.name,
		ID:        e.id,
		Nodes:     len(e.g.Nodes),
		Edges:     len(e.g.Edges),
		CreatedAt: e.createdAt,
	}
}

// Engine is the main entry point for ArqDB. It holds the named-graph
// registry, ordered by name.
//
// Use Open() to initialize an Engine and Close() to shut it down.
type Engine struct {
	opts Options

	// mu guards the registry structure. Individual graphs have their own
	// entry-level lock; registry reads only need the read half.
	mu     sync.RWMutex
	graphs *btree.BTreeG[*graphEntry]

	closed bool
}

func entryLess(a, b *graphEntry) bool {
	return a.name < b.name
}

// Open initializes a new Engine instance using the provided options.
func Open(opts Options) (*Engine, error) {
	e := &Engine{
		opts:   opts,
		graphs: btree.NewBTreeG(entryLess),
	}

	slog.Info("Engine opened", "max_graphs", opts.MaxGraphs)
	return e, nil
}

// Close releases the registry. The engine holds no external resources, so
// this mainly marks the instance unusable and resets the metrics it owns.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	e.graphs.Scan(func(entry *graphEntry) bool {
		metrics.GraphNodes.DeleteLabelValues(entry.name)
		metrics.GraphEdges.DeleteLabelValues(entry.name)
		return true
	})
	metrics.GraphsTotal.Set(0)
	e.graphs = btree.NewBTreeG(entryLess)

	slog.Info("Engine closed")
	return nil
}

// CreateGraph registers a new empty graph under the given name.
func (e *Engine) CreateGraph(name string) (GraphInfo, error) {
	if name == "" {
		return GraphInfo{}, ErrEmptyName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.graphs.Get(&graphEntry{name: name}); exists {
		return GraphInfo{}, ErrGraphExists
	}
	if e.opts.MaxGraphs > 0 && e.graphs.Len() >= e.opts.MaxGraphs {
		return GraphInfo{}, ErrTooManyGraphs
	}

	entry := &graphEntry{
		name:      name,
		id:        uuid.New().String(),
		createdAt: time.Now().UTC(),
		g:         graph.New(),
	}
	e.graphs.Set(entry)

	metrics.GraphsTotal.Set(float64(e.graphs.Len()))
	slog.Info("Graph created", "graph", name, "id", entry.id)

	return entry.info(), nil
}

// DropGraph removes a named graph and everything in it.
func (e *Engine) DropGraph(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, removed := e.graphs.Delete(&graphEntry{name: name}); !removed {
		return ErrGraphNotFound
	}

	metrics.GraphsTotal.Set(float64(e.graphs.Len()))
	metrics.GraphNodes.DeleteLabelValues(name)
	metrics.GraphEdges.DeleteLabelValues(name)
	slog.Info("Graph dropped", "graph", name)

	return nil
}

// ListGraphs returns info for every registered graph, ordered by name.
func (e *Engine) ListGraphs() []GraphInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	infos := make([]GraphInfo, 0, e.graphs.Len())
	e.graphs.Scan(func(entry *graphEntry) bool {
		entry.mu.Lock()
		infos = append(infos, entry.info())
		entry.mu.Unlock()
		return true
	})

	return infos
}

// Info returns the current counts and identity of one graph.
func (e *Engine) Info(name string) (GraphInfo, error) {
	var info GraphInfo
	err := e.withGraph(name, func(entry *graphEntry) error {
		info = entry.info()
		return nil
	})
	return info, err
}

// withGraph runs fn while holding the target graph's exclusive lock.
// This is the single place the guard around the unsynchronized Graph is
// taken.
func (e *Engine) withGraph(name string, fn func(entry *graphEntry) error) error {
	e.mu.RLock()
	entry, found := e.graphs.Get(&graphEntry{name: name})
	e.mu.RUnlock()

	if !found {
		return ErrGraphNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry)
}
