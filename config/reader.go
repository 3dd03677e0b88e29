package config

import (
	"bytes"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"go.viam.com/obb/logging"
)

// Read reads a config from the given file. Environment variables written as $VAR or ${VAR} are
// expanded before decoding.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
// The input is JSON5, so comments, unquoted keys and trailing commas are accepted.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	cfg := Config{
		ConfigFilePath: originalPath,
	}
	if err := json5.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "failed to validate Config")
	}

	logger.Debugw("read config",
		"path", originalPath,
		"boxes", len(cfg.Boxes),
		"point_sets", len(cfg.PointSets),
		"face_axes_only", cfg.SAT.FaceAxesOnly,
	)
	return &cfg, nil
}
