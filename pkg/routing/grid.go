// Package routing computes collision-avoiding orthogonal pipe paths over
// a uniform obstacle grid: A* with a pipe-crossing penalty and a bend
// penalty, followed by collinear smoothing. Routing never fails: when no
// path exists through free cells the planner falls back to a synthetic
// two-bend path, trading obstacle avoidance for liveness.
package routing

import (
	"github.com/dd0wney/pnid-engine/pkg/model"
)

// Cell is a grid coordinate: floor(world / gridSize) per axis.
type Cell struct {
	X int
	Y int
}

// SpatialIndex discretizes the drawing plane into a uniform grid and
// records which cells are blocked by component footprints and which are
// occupied by already-routed pipes. The index is write-once per drawing
// session: obstacles are added up front, pipe occupancy grows serially as
// pipes are routed, and nothing is ever removed.
type SpatialIndex struct {
	gridSize float64
	cols     int
	rows     int

	obstacles map[Cell]struct{}
	pipes     map[Cell]struct{}
}

// NewSpatialIndex creates an index covering [0,width) x [0,height) world
// units at the given cell size.
func NewSpatialIndex(gridSize, width, height float64) *SpatialIndex {
	return &SpatialIndex{
		gridSize:  gridSize,
		cols:      int(width / gridSize),
		rows:      int(height / gridSize),
		obstacles: make(map[Cell]struct{}),
		pipes:     make(map[Cell]struct{}),
	}
}

// GridSize returns the cell size in world units.
func (s *SpatialIndex) GridSize() float64 { return s.gridSize }

// CellAt quantizes a world coordinate to its grid cell.
func (s *SpatialIndex) CellAt(p model.Point) Cell {
	return Cell{X: int(p.X / s.gridSize), Y: int(p.Y / s.gridSize)}
}

// InBounds reports whether the cell lies on the grid. Cells outside are
// implicitly invalid and never expanded.
func (s *SpatialIndex) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < s.cols && c.Y >= 0 && c.Y < s.rows
}

// Blocked reports whether the cell is covered by an obstacle footprint.
func (s *SpatialIndex) Blocked(c Cell) bool {
	_, ok := s.obstacles[c]
	return ok
}

// PipeOccupied reports whether an already-routed pipe runs through the cell.
func (s *SpatialIndex) PipeOccupied(c Cell) bool {
	_, ok := s.pipes[c]
	return ok
}

// AddObstacle marks every cell overlapping the padded rectangle as
// blocked, clamped to the grid bounds.
func (s *SpatialIndex) AddObstacle(x, y, width, height, padding float64) {
	startX := int((x - padding) / s.gridSize)
	startY := int((y - padding) / s.gridSize)
	endX := int((x + width + padding) / s.gridSize)
	endY := int((y + height + padding) / s.gridSize)

	if startX < 0 {
		startX = 0
	}
	if startY < 0 {
		startY = 0
	}
	if endX > s.cols-1 {
		endX = s.cols - 1
	}
	if endY > s.rows-1 {
		endY = s.rows - 1
	}

	for gx := startX; gx <= endX; gx++ {
		for gy := startY; gy <= endY; gy++ {
			s.obstacles[Cell{gx, gy}] = struct{}{}
		}
	}
}

// AddPipePath marks the cells along each consecutive segment of a routed
// polyline as pipe-occupied. Occupied cells stay passable but cost more,
// which steers later pipes away from crossings.
func (s *SpatialIndex) AddPipePath(points []model.Point) {
	for i := 0; i+1 < len(points); i++ {
		a := s.CellAt(points[i])
		b := s.CellAt(points[i+1])
		for _, c := range bresenham(a, b) {
			s.pipes[c] = struct{}{}
		}
	}
}

// bresenham rasterizes the line between two cells, inclusive of both ends.
func bresenham(a, b Cell) []Cell {
	var cells []Cell

	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx - dy

	for {
		cells = append(cells, Cell{x0, y0})
		if x0 == x1 && y0 == y1 {
			return cells
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
