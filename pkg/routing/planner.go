package routing

import (
	"container/heap"

	"github.com/dd0wney/pnid-engine/pkg/model"
)

// Cost constants. The heuristic is unit Manhattan distance without cost
// scaling; with the 1.5 crossing cost and the 0.5 bend penalty that makes
// the search a heuristic approximation rather than a proven shortest-path
// guarantee, but it always terminates on the finite grid and the constants
// are kept for output-compatible behavior.
const (
	costFree     = 1.0
	costPipeCell = 1.5
	costTurn     = 0.5
)

// PathPlanner routes orthogonal paths over a SpatialIndex. It is a pure
// function of (start, end, index state); the index must not be mutated
// concurrently with FindPath calls.
type PathPlanner struct {
	index *SpatialIndex
}

// NewPathPlanner creates a planner over the given index.
func NewPathPlanner(index *SpatialIndex) *PathPlanner {
	return &PathPlanner{index: index}
}

type searchNode struct {
	cell   Cell
	g      float64
	f      float64
	dir    Cell // unit direction this node was entered from
	parent *searchNode
	seq    int // insertion order, the tie-break for equal f
	index  int // heap bookkeeping
}

type nodeQueue []*searchNode

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	// Equal-cost frontier nodes pop in insertion order so repeated runs
	// on identical input produce identical paths.
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *nodeQueue) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*q = old[:n-1]
	return node
}

// 4-connected neighborhood: N, E, S, W.
var directions = [4]Cell{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

func manhattan(a, b Cell) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

// FindPath routes from start to end. The returned polyline begins and
// ends at the exact requested coordinates (not grid-quantized). When the
// goal is unreachable through free cells the documented 4-point fallback
// is returned instead; callers must tolerate that it may overlap
// obstacles.
func (p *PathPlanner) FindPath(start, end model.Point, preferStraight bool) []model.Point {
	path, _ := p.Route(start, end, preferStraight)
	return path
}

// Route is FindPath plus a flag reporting whether the search failed and
// the synthetic fallback was substituted.
func (p *PathPlanner) Route(start, end model.Point, preferStraight bool) ([]model.Point, bool) {
	startCell := p.index.CellAt(start)
	endCell := p.index.CellAt(end)

	open := &nodeQueue{}
	heap.Init(open)

	seq := 0
	push := func(n *searchNode) {
		n.seq = seq
		seq++
		heap.Push(open, n)
	}

	push(&searchNode{
		cell: startCell,
		f:    manhattan(startCell, endCell),
	})

	closed := make(map[Cell]struct{})
	bestG := map[Cell]float64{startCell: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)

		if current.cell == endCell {
			return p.finishPath(current, start, end, preferStraight), false
		}

		if _, done := closed[current.cell]; done {
			continue
		}
		closed[current.cell] = struct{}{}

		for _, d := range directions {
			next := Cell{current.cell.X + d.X, current.cell.Y + d.Y}

			if !p.index.InBounds(next) || p.index.Blocked(next) {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}

			stepCost := costFree
			if p.index.PipeOccupied(next) {
				stepCost = costPipeCell
			}

			tentative := current.g + stepCost
			if preferStraight && current.parent != nil && d != current.dir {
				tentative += costTurn
			}

			if known, seen := bestG[next]; seen && tentative >= known {
				continue
			}
			bestG[next] = tentative

			push(&searchNode{
				cell:   next,
				g:      tentative,
				f:      tentative + manhattan(next, endCell),
				dir:    d,
				parent: current,
			})
		}
	}

	// Open set exhausted: start and end are mutually unreachable through
	// free cells. Liveness over correctness.
	return FallbackPath(start, end), true
}

// finishPath reconstructs the cell path, converts to world coordinates,
// smooths, and pins the endpoints to the exact requested coordinates.
func (p *PathPlanner) finishPath(goal *searchNode, start, end model.Point, preferStraight bool) []model.Point {
	var path []model.Point
	for n := goal; n != nil; n = n.parent {
		path = append(path, model.Point{
			X: float64(n.cell.X) * p.index.gridSize,
			Y: float64(n.cell.Y) * p.index.gridSize,
		})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	if len(path) == 1 {
		// Start and end quantize to the same cell.
		return []model.Point{start, end}
	}

	if preferStraight {
		path = SmoothPath(path)
	}

	path[0] = start
	path[len(path)-1] = end
	return path
}

// SmoothPath drops intermediate collinear waypoints: from each point it
// greedily extends to the farthest later point reachable via a single
// straight horizontal or vertical segment. Genuine turns are never
// removed.
func SmoothPath(path []model.Point) []model.Point {
	if len(path) <= 2 {
		return path
	}

	smoothed := []model.Point{path[0]}

	i := 0
	for i < len(path)-1 {
		j := i + 1
		for j < len(path) && collinear(path[i], path[j]) {
			j++
		}
		if j-1 == i {
			// Non-orthogonal input segment: keep the next point as-is.
			j++
		}
		smoothed = append(smoothed, path[j-1])
		i = j - 1
	}

	return smoothed
}

// collinear reports whether two points lie on one horizontal or vertical
// line.
func collinear(a, b model.Point) bool {
	return a.X == b.X || a.Y == b.Y
}

// FallbackPath is the synthetic route used when no grid path exists: two
// orthogonal segments through the horizontal midpoint. Exactly 4 points.
func FallbackPath(start, end model.Point) []model.Point {
	midX := (start.X + end.X) / 2
	return []model.Point{
		start,
		{X: midX, Y: start.Y},
		{X: midX, Y: end.Y},
		end,
	}
}

// SimplePath is the cheap orthogonal heuristic used when grid routing is
// disabled: an L-shape for short runs, a Z through 70% of the dominant
// axis otherwise.
func SimplePath(start, end model.Point) []model.Point {
	points := []model.Point{start}

	dx := end.X - start.X
	dy := end.Y - start.Y

	if absFloat(dx) > 50 && absFloat(dy) > 50 {
		if absFloat(dx) > absFloat(dy) {
			midX := start.X + dx*0.7
			points = append(points,
				model.Point{X: midX, Y: start.Y},
				model.Point{X: midX, Y: end.Y})
		} else {
			midY := start.Y + dy*0.7
			points = append(points,
				model.Point{X: start.X, Y: midY},
				model.Point{X: end.X, Y: midY})
		}
	} else {
		points = append(points, model.Point{X: end.X, Y: start.Y})
	}

	return append(points, end)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
