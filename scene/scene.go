// Package scene holds a mutable collection of named oriented boxes and sweeps it for colliding pairs.
package scene

import (
	"context"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"go.viam.com/obb/config"
	"go.viam.com/obb/logging"
	"go.viam.com/obb/spatialmath"
)

// ErrBoxNotFound is returned when a handle does not name a box in the scene.
var ErrBoxNotFound = errors.New("box not found")

// Entry is a snapshot of one box in the scene.
type Entry struct {
	ID      uuid.UUID
	Name    string
	Visible bool
	Box     spatialmath.OBB
}

// Collision is a pair of overlapping visible boxes. A was added to the scene before B.
type Collision struct {
	A      Entry
	B      Entry
	Result spatialmath.SATResult
}

// Scene owns a set of boxes addressed by handle. All methods are safe for concurrent use.
type Scene struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*Entry
	order   []uuid.UUID

	axes    spatialmath.AxisSet
	workers int
	logger  logging.Logger
}

// New returns an empty scene. Collisions tests pairs with the given axis set, running at most
// workers tests at once.
func New(axes spatialmath.AxisSet, workers int, logger logging.Logger) *Scene {
	if workers < 1 {
		workers = 1
	}
	return &Scene{
		entries: map[uuid.UUID]*Entry{},
		axes:    axes,
		workers: workers,
		logger:  logger,
	}
}

// FromConfig builds a scene from a validated config. Every box is added as configured, and every
// point set becomes a minimum-area box named after it.
func FromConfig(cfg *config.Config, logger logging.Logger) (*Scene, error) {
	s := New(cfg.SAT.Axes(), cfg.Workers, logger)
	for idx := range cfg.Boxes {
		b := &cfg.Boxes[idx]
		id := s.Add(b.Name, b.OBB())
		if b.Hidden {
			if err := s.UpdateVisibility(id, false); err != nil {
				return nil, err
			}
		}
	}
	for idx := range cfg.PointSets {
		ps := &cfg.PointSets[idx]
		if _, err := s.AddMinimumAreaOBB(ps.Name, ps.R2()); err != nil {
			return nil, errors.Wrapf(err, "point set %q", ps.Name)
		}
	}
	return s, nil
}

// Add inserts a visible box and returns its handle.
func (s *Scene) Add(name string, box spatialmath.OBB) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.entries[id] = &Entry{ID: id, Name: name, Visible: true, Box: box}
	s.order = append(s.order, id)
	s.logger.Debugw("added box", "name", name, "id", id.String(), "box", box.String())
	return id
}

// AddMinimumAreaOBB builds the minimum-area box of a polygon and adds it to the scene.
func (s *Scene) AddMinimumAreaOBB(name string, points []r2.Point) (uuid.UUID, error) {
	box, err := spatialmath.MinimumAreaOBB(points)
	if err != nil {
		return uuid.Nil, err
	}
	return s.Add(name, box), nil
}

// Remove deletes a box.
func (s *Scene) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return notFound(id)
	}
	delete(s.entries, id)
	s.order = lo.Without(s.order, id)
	return nil
}

// Get returns a snapshot of a box.
func (s *Scene) Get(id uuid.UUID) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return Entry{}, notFound(id)
	}
	return *e, nil
}

// UpdateCenter moves a box.
func (s *Scene) UpdateCenter(id uuid.UUID, center r3.Vector) error {
	return s.update(id, func(e *Entry) { e.Box.SetCenter(center) })
}

// UpdateExtents resizes a box.
func (s *Scene) UpdateExtents(id uuid.UUID, extents r3.Vector) error {
	return s.update(id, func(e *Entry) { e.Box.SetExtents(extents) })
}

// UpdateRotation replaces a box's orientation with the rotation for the given Euler angles in degrees.
func (s *Scene) UpdateRotation(id uuid.UUID, degrees r3.Vector) error {
	return s.update(id, func(e *Entry) { e.Box.SetRotation(degrees) })
}

// UpdateVisibility shows or hides a box. Hidden boxes are skipped by Collisions.
func (s *Scene) UpdateVisibility(id uuid.UUID, visible bool) error {
	return s.update(id, func(e *Entry) { e.Visible = visible })
}

func (s *Scene) update(id uuid.UUID, apply func(*Entry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return notFound(id)
	}
	apply(e)
	return nil
}

// List returns snapshots of every box in insertion order.
func (s *Scene) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.order, func(id uuid.UUID, _ int) Entry { return *s.entries[id] })
}

// Len returns the number of boxes in the scene.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Collisions returns every pair of visible boxes that overlap. Pairs whose world bounds do not
// touch are discarded before the separating axis test runs. Results are ordered by the insertion
// order of the first box, then of the second.
func (s *Scene) Collisions(ctx context.Context) ([]Collision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	visible := lo.Filter(s.List(), func(e Entry, _ int) bool { return e.Visible })
	bounds := lo.Map(visible, func(e Entry, _ int) spatialmath.AABB { return e.Box.AABB() })

	type pair struct{ i, j int }
	var candidates []pair
	for i := range visible {
		for j := i + 1; j < len(visible); j++ {
			if bounds[i].Overlaps(bounds[j]) {
				candidates = append(candidates, pair{i, j})
			}
		}
	}
	s.logger.CDebugf(ctx, "testing %d of %d box pairs", len(candidates), len(visible)*(len(visible)-1)/2)

	results := make([]spatialmath.SATResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for idx, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[idx] = spatialmath.SeparatingAxisTest(visible[c.i].Box, visible[c.j].Box, s.axes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var collisions []Collision
	for idx, c := range candidates {
		if !results[idx].Colliding {
			s.logger.CDebugw(ctx, "separated", "a", visible[c.i].Name, "b", visible[c.j].Name, "axis", results[idx].SeparatingAxis.String())
			continue
		}
		collisions = append(collisions, Collision{A: visible[c.i], B: visible[c.j], Result: results[idx]})
	}
	return collisions, nil
}

func notFound(id uuid.UUID) error {
	return errors.Wrapf(ErrBoxNotFound, "id %s", id)
}
