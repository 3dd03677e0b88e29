// Package cli contains all business logic needed by the obb command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/obb/logging"
)

const (
	// Flags.
	generalFlagDebug    = "debug"
	generalFlagConfig   = "config"
	generalFlagLogFile  = "log-file"
	generalFlagLogLevel = "log-level"

	buildFlagPoints = "points"

	collideFlagFaceAxesOnly = "face-axes-only"
	collideFlagWatch        = "watch"

	loggerMetadataKey      = "logger"
	logFileMetadataKey     = "log-file"
	logFileMaxSizeMB       = 10
	logFileMaxBackupsCount = 3
)

// NewApp returns a new app with the CLI command tree. Tables are written to out, logs and
// errors to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "obb",
		Usage:           "build oriented bounding boxes and test them for collisions",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogLevel,
				Usage: "log `LEVEL`: debug, info, warn or error",
				Value: "warn",
			},
			&cli.PathFlag{
				Name:  generalFlagLogFile,
				Usage: "also write logs to the rotated `FILE`",
			},
		},
		Before: func(c *cli.Context) error {
			level, err := logging.LevelFromString(c.String(generalFlagLogLevel))
			if err != nil {
				return err
			}
			logger := logging.NewBlankLogger("obb")
			logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
			logger.SetLevel(level)
			if c.Bool(generalFlagDebug) {
				logger.SetLevel(logging.DEBUG)
			}
			if c.App.Metadata == nil {
				c.App.Metadata = map[string]interface{}{}
			}
			if path := c.Path(generalFlagLogFile); path != "" {
				fileAppender := logging.NewFileAppender(path, logFileMaxSizeMB, logFileMaxBackupsCount)
				logger.AddAppender(fileAppender)
				c.App.Metadata[logFileMetadataKey] = fileAppender
			}
			c.App.Metadata[loggerMetadataKey] = logger
			return nil
		},
		After: func(c *cli.Context) error {
			if fileAppender, ok := c.App.Metadata[logFileMetadataKey].(*logging.FileAppender); ok {
				return fileAppender.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "build minimum-area boxes from polygons",
				UsageText: "obb build [--points FILE | --config FILE]",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:  buildFlagPoints,
						Usage: "read a single polygon, a JSON5 list of [x, y] or [x, y, z] points, from `FILE`",
					},
					&cli.PathFlag{
						Name:    generalFlagConfig,
						Aliases: []string{"c"},
						Usage:   "build a box for every point set in the config `FILE`",
					},
				},
				Action: BuildAction,
			},
			{
				Name:      "collide",
				Usage:     "list the colliding pairs of a scene",
				UsageText: "obb collide --config FILE [--face-axes-only] [--watch]",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     generalFlagConfig,
						Aliases:  []string{"c"},
						Usage:    "load the scene from config `FILE`",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  collideFlagFaceAxesOnly,
						Usage: "test only face normals, skipping the edge-edge axes",
					},
					&cli.BoolFlag{
						Name:  collideFlagWatch,
						Usage: "re-run whenever the config file changes",
					},
				},
				Action: CollideAction,
			},
			{
				Name:      "fit",
				Usage:     "fit a principal-axes box to a point cloud",
				UsageText: "obb fit --points FILE",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     buildFlagPoints,
						Usage:    "read a JSON5 list of [x, y, z] points from `FILE`",
						Required: true,
					},
				},
				Action: FitAction,
			},
			{
				Name:      "corners",
				Usage:     "print the derived corners of every box in a scene",
				UsageText: "obb corners --config FILE",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     generalFlagConfig,
						Aliases:  []string{"c"},
						Usage:    "load the scene from config `FILE`",
						Required: true,
					},
				},
				Action: CornersAction,
			},
		},
	}
}

func loggerFrom(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[loggerMetadataKey].(logging.Logger); ok {
		return logger
	}
	return logging.NewBlankLogger("obb")
}
