// Package graph derives a signal-connectivity view over the pipe set:
// which components are linked by instrumentation lines. It is a one-hop
// adjacency index, not a transitive closure; loop inference only ever
// looks one hop out from a controller.
package graph

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/dd0wney/pnid-engine/pkg/model"
)

// Connectivity answers one-hop signal-neighbor queries. Build it once per
// analysis pass; it holds no state beyond the adjacency index.
type Connectivity struct {
	adjacency map[string]map[string]struct{}
}

// New indexes the model's instrumentation pipes. Pipes with an unresolved
// end contribute nothing; the link is undirected.
func New(m *model.Model) *Connectivity {
	c := &Connectivity{adjacency: make(map[string]map[string]struct{})}

	for _, pipe := range m.Pipes {
		if pipe.LineType != model.LineInstrumentation {
			continue
		}
		if pipe.From == nil || pipe.To == nil {
			continue
		}
		c.link(pipe.From.ID, pipe.To.ID)
		c.link(pipe.To.ID, pipe.From.ID)
	}

	return c
}

func (c *Connectivity) link(from, to string) {
	set, ok := c.adjacency[from]
	if !ok {
		set = make(map[string]struct{})
		c.adjacency[from] = set
	}
	set[to] = struct{}{}
}

// SignalNeighbors returns the IDs of components reachable from the given
// component via exactly one instrumentation pipe, sorted for deterministic
// downstream iteration.
func (c *Connectivity) SignalNeighbors(componentID string) []string {
	set, ok := c.adjacency[componentID]
	if !ok {
		return nil
	}
	neighbors := maps.Keys(set)
	sort.Strings(neighbors)
	return neighbors
}

// Connected reports whether two components share a direct signal line.
func (c *Connectivity) Connected(a, b string) bool {
	set, ok := c.adjacency[a]
	if !ok {
		return false
	}
	_, ok = set[b]
	return ok
}
