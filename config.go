package strictjson

import (
	"os"
	"strconv"
	"sync/atomic"
)

// Environment variables consulted once at package initialization.
const (
	// EnvEnabled forces strict mode on or off ("true", "0", ...).
	EnvEnabled = "STRICTJSON_ENABLED"
	// EnvGoEnv disables strict mode when set to "production", unless
	// EnvEnabled says otherwise.
	EnvGoEnv = "GO_ENV"
)

var enabled atomic.Bool

func init() { enabled.Store(enabledFromEnv(os.LookupEnv)) }

// enabledFromEnv derives the initial mode from the environment.
func enabledFromEnv(lookup func(string) (string, bool)) bool {
	if v, ok := lookup(EnvEnabled); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	if v, ok := lookup(EnvGoEnv); ok && v == "production" {
		return false
	}
	return true
}

// SetEnabled switches the process-wide mode used by the package-level
// functions. It is meant to be called once at startup.
func SetEnabled(on bool) { enabled.Store(on) }

// Enabled reports whether the package-level functions validate.
func Enabled() bool { return enabled.Load() }
