package engine

import (
	"errors"
	"testing"

	"github.com/arqdb/arqdb/pkg/graph"
)

func TestGraphLifecycle(t *testing.T) {
	eng, err := Open(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()

	// 1. Create
	info, err := eng.CreateGraph("social")
	if err != nil {
		t.Fatalf("CreateGraph failed: %v", err)
	}
	if info.Name != "social" || info.ID == "" {
		t.Errorf("unexpected info for new graph: %+v", info)
	}
	if info.Nodes != 0 || info.Edges != 0 {
		t.Errorf("new graph must be empty, got %+v", info)
	}

	// 2. Duplicate name is rejected
	if _, err := eng.CreateGraph("social"); !errors.Is(err, ErrGraphExists) {
		t.Errorf("duplicate create: got %v, want ErrGraphExists", err)
	}

	// 3. Empty name is rejected
	if _, err := eng.CreateGraph(""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name: got %v, want ErrEmptyName", err)
	}

	// 4. Listing is ordered by name
	eng.CreateGraph("alpha")
	eng.CreateGraph("zeta")

	list := eng.ListGraphs()
	if len(list) != 3 {
		t.Fatalf("ListGraphs returned %d entries, want 3", len(list))
	}
	if list[0].Name != "alpha" || list[1].Name != "social" || list[2].Name != "zeta" {
		t.Errorf("ListGraphs not ordered by name: %v", []string{list[0].Name, list[1].Name, list[2].Name})
	}

	// 5. Drop
	if err := eng.DropGraph("social"); err != nil {
		t.Fatalf("DropGraph failed: %v", err)
	}
	if err := eng.DropGraph("social"); !errors.Is(err, ErrGraphNotFound) {
		t.Errorf("double drop: got %v, want ErrGraphNotFound", err)
	}
	if _, err := eng.Info("social"); !errors.Is(err, ErrGraphNotFound) {
		t.Errorf("Info after drop: got %v, want ErrGraphNotFound", err)
	}
}

func TestMaxGraphsLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxGraphs = 2

	eng, err := Open(opts)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()

	eng.CreateGraph("one")
	eng.CreateGraph("two")

	if _, err := eng.CreateGraph("three"); !errors.Is(err, ErrTooManyGraphs) {
		t.Errorf("over-limit create: got %v, want ErrTooManyGraphs", err)
	}

	// dropping frees a slot
	eng.DropGraph("one")
	if _, err := eng.CreateGraph("three"); err != nil {
		t.Errorf("create after drop failed: %v", err)
	}
}

func TestUnknownGraphOperations(t *testing.T) {
	eng, _ := Open(DefaultOptions())
	defer eng.Close()

	if _, err := eng.AddNode("ghost", graph.Int(1)); !errors.Is(err, ErrGraphNotFound) {
		t.Errorf("AddNode on unknown graph: got %v, want ErrGraphNotFound", err)
	}
	if _, _, err := eng.ShortestPath("ghost", 0, 1); !errors.Is(err, ErrGraphNotFound) {
		t.Errorf("ShortestPath on unknown graph: got %v, want ErrGraphNotFound", err)
	}
	if _, err := eng.Stats("ghost"); !errors.Is(err, ErrGraphNotFound) {
		t.Errorf("Stats on unknown graph: got %v, want ErrGraphNotFound", err)
	}
}

func TestConcurrentMutation(t *testing.T) {
	// the engine is the synchronization boundary around the
	// unsynchronized core graph, so parallel writers must be safe
	eng, _ := Open(DefaultOptions())
	defer eng.Close()

	eng.CreateGraph("busy")

	done := make(chan struct{})
	for w := 0; w < 8; w++ {
		go func(worker int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				eng.AddNode("busy", graph.Int(worker*1000+i))
			}
		}(w)
	}
	for w := 0; w < 8; w++ {
		<-done
	}

	info, err := eng.Info("busy")
	if err != nil {
		t.Fatal(err)
	}
	if info.Nodes != 800 {
		t.Errorf("after 8x100 distinct inserts got %d nodes, want 800", info.Nodes)
	}
}
