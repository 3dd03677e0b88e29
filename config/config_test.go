package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/obb/logging"
	"go.viam.com/obb/spatialmath"
)

const sceneJSON5 = `{
	// two crates and a pallet footprint
	sat: {face_axes_only: true},
	workers: 2,
	boxes: [
		{name: "crate", center: [0, 0, 0], extents: [1, 1, 1]},
		{name: "tilted", center: [1.5, 0, 0], extents: [1, 2, 0.5], rotation_deg: [0, 0, 45]},
		{name: "ghost", center: [9, 9, 9], extents: [1, 1, 1], hidden: true},
	],
	point_sets: [
		{name: "pallet", points: [[0, 0], [4, 0], [4, 2], [0, 2]]},
	],
}`

func TestFromReader(t *testing.T) {
	logger := logging.NewTestLogger(t)
	cfg, err := FromReader("scene.json5", strings.NewReader(sceneJSON5), logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, "scene.json5")
	test.That(t, cfg.SAT.FaceAxesOnly, test.ShouldBeTrue)
	test.That(t, cfg.SAT.Axes(), test.ShouldEqual, spatialmath.FaceAxes)
	test.That(t, cfg.Workers, test.ShouldEqual, 2)
	test.That(t, len(cfg.Boxes), test.ShouldEqual, 3)
	test.That(t, cfg.Boxes[1].RotationDeg, test.ShouldResemble, [3]float64{0, 0, 45})
	test.That(t, cfg.Boxes[2].Hidden, test.ShouldBeTrue)

	box := cfg.Boxes[1].OBB()
	test.That(t, box.Center(), test.ShouldResemble, r3.Vector{X: 1.5})
	test.That(t, box.Extents(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 0.5})
	test.That(t, box.Rotation(), test.ShouldResemble, r3.Vector{Z: 45})

	test.That(t, cfg.PointSets[0].R2(), test.ShouldResemble, []r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 2}})
}

func TestFromReaderDefaults(t *testing.T) {
	cfg, err := FromReader("", strings.NewReader(`{"boxes": [{"name": "a", "center": [0,0,0], "extents": [1,1,1]}]}`),
		logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Workers, test.ShouldEqual, DefaultWorkers)
	test.That(t, cfg.SAT.Axes(), test.ShouldEqual, spatialmath.AllAxes)
	test.That(t, cfg.Boxes[0].OBB().Orientation(), test.ShouldResemble, spatialmath.Rotate(r3.Vector{}))
}

func TestFromReaderErrors(t *testing.T) {
	logger := logging.NewTestLogger(t)

	_, err := FromReader("", strings.NewReader(`{boxes: [`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode Config")

	_, err = FromReader("", strings.NewReader(`{boxes: [{center: [0, 0, 0], extents: [1, 1, 1]}]}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `error validating "boxes.0": "name" is required`)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Workers: -1,
		Boxes: []Box{
			{Name: "a", Extents: [3]float64{1, 1, 1}},
			{Name: "a", Extents: [3]float64{1, -1, 1}},
		},
		PointSets: []PointSet{
			{Name: "short", Points: [][2]float64{{0, 0}}},
			{Points: [][2]float64{{0, 0}, {1, 1}}},
		},
	}
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)

	errs := multierr.Errors(err)
	test.That(t, len(errs), test.ShouldEqual, 5)
	test.That(t, errs[0].Error(), test.ShouldContainSubstring, `error validating "workers"`)
	test.That(t, errs[1].Error(), test.ShouldContainSubstring, `error validating "boxes.1"`)
	test.That(t, errs[1].Error(), test.ShouldContainSubstring, "(1.000, -1.000, 1.000)")
	test.That(t, errors.Is(errs[1], spatialmath.ErrNegativeExtents), test.ShouldBeTrue)
	test.That(t, errs[2].Error(), test.ShouldContainSubstring, `box name "a" is not unique`)
	test.That(t, errs[3].Error(), test.ShouldContainSubstring, `error validating "point_sets.0": need at least 2 points`)
	test.That(t, errs[4].Error(), test.ShouldContainSubstring, `error validating "point_sets.1": "name" is required`)
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json5")
	contents := `{boxes: [{name: "${OBB_TEST_BOX}", center: [0, 0, 0], extents: [1, 1, 1]}]}`
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)

	t.Setenv("OBB_TEST_BOX", "from-env")
	cfg, err := Read(path, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	expected := &Config{
		ConfigFilePath: path,
		Workers:        DefaultWorkers,
		Boxes:          []Box{{Name: "from-env", Extents: [3]float64{1, 1, 1}}},
	}
	test.That(t, cmp.Diff(expected, cfg), test.ShouldBeEmpty)

	_, err = Read(filepath.Join(dir, "missing.json5"), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}
