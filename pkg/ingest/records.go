// Package ingest converts raw component/pipe records into the analysis
// model: CSV loading, record validation, reference resolution, and the
// tag preprocessing that populates TagInfo before anything downstream
// runs.
package ingest

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/pnid-engine/pkg/config"
	"github.com/dd0wney/pnid-engine/pkg/model"
)

var validate = validator.New()

// ComponentRecord is the raw component row supplied by the data layer.
type ComponentRecord struct {
	ID       string  `validate:"required"`
	Tag      string  // defaults to ID
	Type     string  // defaults to valve
	X        float64 `validate:"gte=0"`
	Y        float64 `validate:"gte=0"`
	Width    float64 `validate:"gte=0"`
	Height   float64 `validate:"gte=0"`
	Rotation float64
	Material string
	Rating   string
	Size     string
}

// PipeRecord is the raw pipe row supplied by the data layer. Component
// references are weak: unknown IDs degrade rather than fail.
type PipeRecord struct {
	PipeNo        string `validate:"required"`
	Label         string
	LineType      string
	FromComponent string
	FromPort      string
	ToComponent   string
	ToPort        string
	// Polyline is an optional literal path: "(x1, y1), (x2, y2), ...".
	Polyline string
}

var polylinePointPattern = regexp.MustCompile(`\(([-\d.]+),\s*([-\d.]+)\)`)

// ParsePolyline extracts the literal point list from a polyline string.
// Unparseable fragments are skipped; an empty or absent string yields nil.
func ParsePolyline(s string) []model.Point {
	var points []model.Point
	for _, m := range polylinePointPattern.FindAllStringSubmatch(s, -1) {
		x, errX := strconv.ParseFloat(m[1], 64)
		y, errY := strconv.ParseFloat(m[2], 64)
		if errX != nil || errY != nil {
			continue
		}
		points = append(points, model.Point{X: x, Y: y})
	}
	return points
}

// BuildModel validates the records and assembles the model: components
// first (tags parsed, ports derived, footprints scaled), then pipes with
// references resolved and literal polylines attached. Pipes with no
// polyline and resolved endpoints are left for the router.
func BuildModel(comps []ComponentRecord, pipes []PipeRecord, cfg config.DrawingConfig) (*model.Model, error) {
	m := model.NewModel()

	for i, rec := range comps {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("component record %d (%s): %w", i, rec.ID, err)
		}
		if _, exists := m.Components[rec.ID]; exists {
			return nil, fmt.Errorf("component record %d: duplicate id %s", i, rec.ID)
		}

		c := model.NewComponent(
			rec.ID, rec.Tag, rec.Type,
			rec.X, rec.Y,
			rec.Width*cfg.SymbolScale, rec.Height*cfg.SymbolScale,
			rec.Rotation,
		)
		c.Material = rec.Material
		c.Rating = rec.Rating
		c.Size = rec.Size
		m.AddComponent(c)
	}

	for i, rec := range pipes {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("pipe record %d (%s): %w", i, rec.PipeNo, err)
		}

		p := model.NewPipe(
			rec.PipeNo, rec.Label, rec.LineType,
			rec.FromComponent, rec.FromPort,
			rec.ToComponent, rec.ToPort,
		)
		p.Resolve(m)
		p.Points = ParsePolyline(rec.Polyline)
		m.AddPipe(p)
	}

	return m, nil
}
