package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/obb/config"
	"go.viam.com/obb/logging"
	"go.viam.com/obb/scene"
	"go.viam.com/obb/spatialmath"
)

// BuildAction is the corresponding Action for 'build'.
func BuildAction(c *cli.Context) error {
	logger := loggerFrom(c)
	pointsPath, configPath := c.Path(buildFlagPoints), c.Path(generalFlagConfig)
	if (pointsPath == "") == (configPath == "") {
		return errors.Errorf("exactly one of --%s or --%s is required", buildFlagPoints, generalFlagConfig)
	}

	type named struct {
		name string
		box  spatialmath.OBB
	}
	var boxes []named
	if pointsPath != "" {
		points, err := readPoints(pointsPath)
		if err != nil {
			return err
		}
		box, err := spatialmath.MinimumAreaOBBFromPoints(points)
		if err != nil {
			return errors.Wrapf(err, "building box for %q", pointsPath)
		}
		boxes = append(boxes, named{strings.TrimSuffix(filepath.Base(pointsPath), filepath.Ext(pointsPath)), box})
	} else {
		cfg, err := config.Read(configPath, logger)
		if err != nil {
			return err
		}
		for idx := range cfg.PointSets {
			ps := &cfg.PointSets[idx]
			box, err := spatialmath.MinimumAreaOBB(ps.R2())
			if err != nil {
				return errors.Wrapf(err, "building box for point set %q", ps.Name)
			}
			boxes = append(boxes, named{ps.Name, box})
		}
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "Center", "Extents", "Rotation Z", "Area"})
	for _, b := range boxes {
		logger.Debugw("built box", "name", b.name, "box", b.box.String())
		ext := b.box.Extents()
		t.AppendRow(table.Row{
			b.name,
			formatVector(b.box.Center()),
			formatVector(ext),
			fmt.Sprintf("%.2f", b.box.Rotation().Z),
			fmt.Sprintf("%.3f", 4*ext.X*ext.Y),
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// CollideAction is the corresponding Action for 'collide'.
func CollideAction(c *cli.Context) error {
	logger := loggerFrom(c)
	configPath := c.Path(generalFlagConfig)
	run := func() error {
		return printCollisions(c.Context, c.App.Writer, configPath, c.Bool(collideFlagFaceAxesOnly), logger)
	}
	if err := run(); err != nil {
		return err
	}
	if !c.Bool(collideFlagWatch) {
		return nil
	}

	watcher, err := newConfigWatcher(configPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Warnw("failed to close config watcher", "error", err)
		}
	}()
	return watcher.Run(c.Context, run)
}

func printCollisions(ctx context.Context, out io.Writer, configPath string, faceAxesOnly bool, logger logging.Logger) error {
	cfg, err := config.Read(configPath, logger)
	if err != nil {
		return err
	}
	if faceAxesOnly {
		cfg.SAT.FaceAxesOnly = true
	}
	s, err := scene.FromConfig(cfg, logger.Sublogger("scene"))
	if err != nil {
		return err
	}
	collisions, err := s.Collisions(ctx)
	if err != nil {
		return err
	}
	if len(collisions) == 0 {
		printf(out, "no collisions among %d boxes", s.Len())
		return nil
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "A", "B", "Center Offset (A frame)"})
	for i, col := range collisions {
		t.AppendRow(table.Row{i + 1, col.A.Name, col.B.Name, formatVector(col.Result.Translation)})
	}
	printf(out, "%s", t.Render())
	return nil
}

// FitAction is the corresponding Action for 'fit'.
func FitAction(c *cli.Context) error {
	logger := loggerFrom(c)
	points, err := readPoints(c.Path(buildFlagPoints))
	if err != nil {
		return err
	}
	box, err := spatialmath.FitOBB(points)
	if err != nil {
		return err
	}
	_, variances, err := spatialmath.PrincipalAxes(spatialmath.Covariance(points))
	if err != nil {
		return err
	}
	logger.Debugw("fitted box", "points", len(points), "box", box.String())

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Center", "Extents", "Rotation", "Variances", "Volume"})
	t.AppendRow(table.Row{
		formatVector(box.Center()),
		formatVector(box.Extents()),
		formatVector(box.Rotation()),
		formatVector(variances),
		fmt.Sprintf("%.3f", box.Volume()),
	})
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// CornersAction is the corresponding Action for 'corners'.
func CornersAction(c *cli.Context) error {
	logger := loggerFrom(c)
	cfg, err := config.Read(c.Path(generalFlagConfig), logger)
	if err != nil {
		return err
	}
	s, err := scene.FromConfig(cfg, logger.Sublogger("scene"))
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Box", "Corner", "Position"})
	for _, e := range s.List() {
		for i, corner := range e.Box.Corners() {
			t.AppendRow(table.Row{e.Name, spatialmath.Corner(i).String(), formatVector(corner)})
		}
		t.AppendSeparator()
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

func formatVector(v r3.Vector) string {
	return fmt.Sprintf("X:%.2f, Y:%.2f, Z:%.2f", v.X, v.Y, v.Z)
}

// printf prints a message with a newline to the given writer.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
