package portal

import (
	"time"

	"github.com/portal-go/portal/types"
	"github.com/spf13/viper"
)

// ViperKey is the configuration key under which portal options are expected
const ViperKey = "portal"

// Options holds the externally configurable portal settings.  Durations may
// be given as time.ParseDuration strings or as fractional seconds.
type Options struct {
	// Timeout is how long Open blocks for a result.  If unset or zero,
	// DefaultTimeout is used.
	Timeout types.Duration `json:"timeout"`
}

// Apply returns the functional options represented by this configuration.
// A nil Options simply yields defaults.
func (o *Options) Apply() []Option {
	var options []Option
	if o != nil && o.Timeout > 0 {
		options = append(options, WithTimeout(time.Duration(o.Timeout)))
	}

	return options
}

// FromViper unmarshals Options from the ViperKey subtree of the given viper
// environment.  A nil viper yields default Options.
func FromViper(v *viper.Viper) (*Options, error) {
	o := new(Options)
	if v == nil {
		return o, nil
	}

	if err := v.UnmarshalKey(ViperKey, o, viper.DecodeHook(types.DecodeHook())); err != nil {
		return nil, err
	}

	return o, nil
}
