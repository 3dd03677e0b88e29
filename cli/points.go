package cli

import (
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// readPoints reads a JSON5 list of points. Each point has two or three coordinates; a missing Z
// is zero.
func readPoints(path string) ([]r3.Vector, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw [][]float64
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "failed to decode points from %q", path)
	}

	points := make([]r3.Vector, 0, len(raw))
	for i, p := range raw {
		switch len(p) {
		case 2:
			points = append(points, r3.Vector{X: p[0], Y: p[1]})
		case 3:
			points = append(points, r3.Vector{X: p[0], Y: p[1], Z: p[2]})
		default:
			return nil, errors.Errorf("point %d in %q has %d coordinates, expected 2 or 3", i, path, len(p))
		}
	}
	return points, nil
}
