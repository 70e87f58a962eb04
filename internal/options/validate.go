// Package options provides shared checks for functional-option configuration.
package options

import (
	"strings"

	"github.com/casdoor/swagfix/oaserrors"
)

// Source names one candidate input of an option set and whether it was given.
type Source struct {
	Option string
	Set    bool
}

// RequireOneSource ensures exactly one of sources is set. The returned
// *oaserrors.ConfigError lists the option names so callers can tell the
// user what to pass.
func RequireOneSource(sources ...Source) error {
	var names, set []string
	for _, s := range sources {
		names = append(names, s.Option)
		if s.Set {
			set = append(set, s.Option)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Option:  "input",
			Message: "must specify an input source (use " + strings.Join(names, ", ") + ")",
		}
	default:
		return &oaserrors.ConfigError{
			Option:  "input",
			Value:   strings.Join(set, ", "),
			Message: "must specify exactly one input source",
		}
	}
}
