// Package config defines the file format describing a set of boxes and point sets to build,
// test for collisions, and inspect.
package config

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/obb/spatialmath"
	"go.viam.com/obb/utils"
)

// DefaultWorkers is the pair sweep concurrency used when the config leaves it unset.
const DefaultWorkers = 4

// Config describes a scene of boxes plus point sets to build boxes from.
type Config struct {
	ConfigFilePath string `json:"-"`

	SAT       SATConfig  `json:"sat"`
	Workers   int        `json:"workers,omitempty"`
	Boxes     []Box      `json:"boxes,omitempty"`
	PointSets []PointSet `json:"point_sets,omitempty"`
}

// SATConfig selects the collision test mode.
type SATConfig struct {
	// FaceAxesOnly skips the nine edge-edge axes. Some separated pairs are then reported as colliding.
	FaceAxesOnly bool `json:"face_axes_only,omitempty"`
}

// Axes returns the axis set the collision test should run.
func (c SATConfig) Axes() spatialmath.AxisSet {
	if c.FaceAxesOnly {
		return spatialmath.FaceAxes
	}
	return spatialmath.AllAxes
}

// Box describes one oriented box. Rotation angles are in degrees and applied X first, then Y,
// then Z.
type Box struct {
	Name        string     `json:"name"`
	Center      [3]float64 `json:"center"`
	Extents     [3]float64 `json:"extents"`
	RotationDeg [3]float64 `json:"rotation_deg,omitempty"`
	Hidden      bool       `json:"hidden,omitempty"`
}

// Validate ensures all parts of the box config are valid.
func (b *Box) Validate(path string) error {
	if b.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if err := b.OBB().Validate(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}

// OBB builds the box described by the config.
func (b *Box) OBB() spatialmath.OBB {
	box := spatialmath.NewOBB(vec(b.Center), vec(b.Extents))
	box.SetRotation(vec(b.RotationDeg))
	return box
}

// PointSet is a named closed polygon in the XY plane, listed vertex by vertex.
type PointSet struct {
	Name   string       `json:"name"`
	Points [][2]float64 `json:"points"`
}

// Validate ensures all parts of the point set config are valid.
func (p *PointSet) Validate(path string) error {
	if p.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if len(p.Points) < 2 {
		return utils.NewConfigValidationError(path, errors.Errorf("need at least 2 points, got %d", len(p.Points)))
	}
	return nil
}

// R2 returns the polygon vertices.
func (p *PointSet) R2() []r2.Point {
	return lo.Map(p.Points, func(pt [2]float64, _ int) r2.Point {
		return r2.Point{X: pt[0], Y: pt[1]}
	})
}

// Validate checks every box and point set, reporting all failures rather than the first one.
// Workers left at zero is replaced by DefaultWorkers.
func (c *Config) Validate() error {
	var errs error
	if c.Workers < 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError("workers", errors.Errorf("must be non-negative, got %d", c.Workers)))
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}

	for idx := range c.Boxes {
		errs = multierr.Append(errs, c.Boxes[idx].Validate(utils.JoinPath("boxes", idx)))
	}
	boxNames := lo.Map(c.Boxes, func(b Box, _ int) string { return b.Name })
	for _, dup := range lo.FindDuplicates(lo.Compact(boxNames)) {
		errs = multierr.Append(errs, errors.Errorf("box name %q is not unique", dup))
	}

	for idx := range c.PointSets {
		errs = multierr.Append(errs, c.PointSets[idx].Validate(utils.JoinPath("point_sets", idx)))
	}
	setNames := lo.Map(c.PointSets, func(p PointSet, _ int) string { return p.Name })
	for _, dup := range lo.FindDuplicates(lo.Compact(setNames)) {
		errs = multierr.Append(errs, errors.Errorf("point set name %q is not unique", dup))
	}
	return errs
}

func vec(v [3]float64) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
