package routing

import (
	"testing"

	"github.com/dd0wney/pnid-engine/pkg/model"
)

func manhattanLength(path []model.Point) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += absFloat(path[i].X-path[i-1].X) + absFloat(path[i].Y-path[i-1].Y)
	}
	return total
}

func pathsEqual(a, b []model.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestFindPath_ObstacleFreeOptimal checks no wasted detours on an open grid
func TestFindPath_ObstacleFreeOptimal(t *testing.T) {
	idx := NewSpatialIndex(10, 2000, 1500)
	planner := NewPathPlanner(idx)

	start := model.Point{X: 0, Y: 0}
	end := model.Point{X: 100, Y: 50}

	path := planner.FindPath(start, end, true)
	if len(path) < 2 {
		t.Fatalf("path too short: %v", path)
	}

	// Quantized cells are (0,0) and (10,5): 15 grid steps, 150 world units.
	if got := manhattanLength(path); got != 150 {
		t.Errorf("path Manhattan length = %v, want 150", got)
	}
}

// TestFindPath_EndpointExactness pins first/last to the requested coords
func TestFindPath_EndpointExactness(t *testing.T) {
	idx := NewSpatialIndex(10, 2000, 1500)
	planner := NewPathPlanner(idx)

	start := model.Point{X: 5, Y: 7}
	end := model.Point{X: 123, Y: 456}

	path := planner.FindPath(start, end, true)
	if path[0] != start {
		t.Errorf("path[0] = %+v, want exact start %+v", path[0], start)
	}
	if path[len(path)-1] != end {
		t.Errorf("path end = %+v, want exact end %+v", path[len(path)-1], end)
	}
}

// TestFindPath_RoutesAroundObstacle verifies interior waypoints avoid blocks
func TestFindPath_RoutesAroundObstacle(t *testing.T) {
	idx := NewSpatialIndex(10, 2000, 1500)
	// Wall across the direct corridor, with a gap far below.
	idx.AddObstacle(200, 0, 20, 800, 0)
	planner := NewPathPlanner(idx)

	start := model.Point{X: 100, Y: 100}
	end := model.Point{X: 400, Y: 100}

	path := planner.FindPath(start, end, true)
	if len(path) < 2 {
		t.Fatal("expected a routed path")
	}

	// All interior waypoints are on free cells.
	for _, pt := range path[1 : len(path)-1] {
		if idx.Blocked(idx.CellAt(pt)) {
			t.Errorf("waypoint %+v lies on a blocked cell", pt)
		}
	}

	// It had to detour: strictly longer than the straight run.
	if manhattanLength(path) <= 300 {
		t.Errorf("expected detour longer than 300, got %v", manhattanLength(path))
	}
}

// TestFindPath_FallbackLiveness returns the synthetic path for an enclosed goal
func TestFindPath_FallbackLiveness(t *testing.T) {
	idx := NewSpatialIndex(10, 2000, 1500)
	// Block a solid region around and including the goal.
	idx.AddObstacle(500, 500, 100, 100, 30)
	planner := NewPathPlanner(idx)

	start := model.Point{X: 100, Y: 100}
	end := model.Point{X: 550, Y: 550} // inside the blocked region

	path := planner.FindPath(start, end, true)

	want := []model.Point{
		{X: 100, Y: 100},
		{X: 325, Y: 100},
		{X: 325, Y: 550},
		{X: 550, Y: 550},
	}
	if !pathsEqual(path, want) {
		t.Errorf("fallback path = %v, want %v", path, want)
	}
}

// TestFindPath_Deterministic: identical input, identical output
func TestFindPath_Deterministic(t *testing.T) {
	build := func() []model.Point {
		idx := NewSpatialIndex(10, 2000, 1500)
		idx.AddObstacle(300, 200, 80, 80, 20)
		idx.AddObstacle(500, 400, 120, 60, 20)
		planner := NewPathPlanner(idx)
		return planner.FindPath(model.Point{X: 100, Y: 100}, model.Point{X: 900, Y: 700}, true)
	}

	first := build()
	for i := 0; i < 5; i++ {
		if next := build(); !pathsEqual(first, next) {
			t.Fatalf("run %d diverged:\n%v\n%v", i, first, next)
		}
	}
}

// TestFindPath_OrderDependentOccupancy: routing order shapes later pipes,
// and the whole sequence is reproducible
func TestFindPath_OrderDependentOccupancy(t *testing.T) {
	route := func() [][]model.Point {
		idx := NewSpatialIndex(10, 2000, 1500)
		planner := NewPathPlanner(idx)

		var paths [][]model.Point
		legs := [][2]model.Point{
			{{X: 0, Y: 100}, {X: 800, Y: 100}},
			{{X: 400, Y: 0}, {X: 400, Y: 600}},
			{{X: 0, Y: 110}, {X: 800, Y: 110}},
		}
		for _, leg := range legs {
			p := planner.FindPath(leg[0], leg[1], true)
			paths = append(paths, p)
			idx.AddPipePath(p)
		}
		return paths
	}

	first := route()
	second := route()
	for i := range first {
		if !pathsEqual(first[i], second[i]) {
			t.Errorf("pipe %d diverged between identical runs", i)
		}
	}
}

// TestSmoothPath_DropsCollinearOnly removes redundant waypoints, keeps turns
func TestSmoothPath_DropsCollinearOnly(t *testing.T) {
	path := []model.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 30, Y: 0},
		{X: 30, Y: 10}, {X: 30, Y: 20},
		{X: 40, Y: 20},
	}

	smoothed := SmoothPath(path)
	want := []model.Point{
		{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 20}, {X: 40, Y: 20},
	}
	if !pathsEqual(smoothed, want) {
		t.Errorf("smoothed = %v, want %v", smoothed, want)
	}
}

// TestSmoothPath_ShortPaths passes through trivially
func TestSmoothPath_ShortPaths(t *testing.T) {
	for _, path := range [][]model.Point{
		nil,
		{{X: 1, Y: 2}},
		{{X: 1, Y: 2}, {X: 3, Y: 2}},
	} {
		if got := SmoothPath(path); !pathsEqual(got, path) {
			t.Errorf("SmoothPath(%v) = %v, want unchanged", path, got)
		}
	}
}

// TestSimplePath covers both branch shapes of the cheap heuristic
func TestSimplePath(t *testing.T) {
	// Long horizontal run: Z through 70% of X.
	path := SimplePath(model.Point{X: 0, Y: 0}, model.Point{X: 200, Y: 100})
	want := []model.Point{{X: 0, Y: 0}, {X: 140, Y: 0}, {X: 140, Y: 100}, {X: 200, Y: 100}}
	if !pathsEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}

	// Short hop: single L.
	path = SimplePath(model.Point{X: 0, Y: 0}, model.Point{X: 40, Y: 30})
	want = []model.Point{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 30}}
	if !pathsEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}
