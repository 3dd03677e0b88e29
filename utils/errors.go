package utils

import (
	"fmt"

	"github.com/pkg/errors"
)

// NewConfigValidationError returns a config validation error
// occurring at a given path.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewConfigValidationFieldRequiredError returns a config validation
// error for a field missing at a given path.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return NewConfigValidationError(path, errors.Errorf("%q is required", field))
}

// JoinPath builds the dotted config path used in validation errors.
func JoinPath(path string, parts ...interface{}) string {
	for _, p := range parts {
		if path == "" {
			path = fmt.Sprint(p)
			continue
		}
		path = fmt.Sprintf("%s.%v", path, p)
	}
	return path
}
