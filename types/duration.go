package types

import (
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/portal-go/portal/deadline"
)

// Duration is an extension of time.Duration that provides prettier JSON and
// configuration support.  Bare numeric values are interpreted as fractional
// seconds, which is the external convention for timeouts in this module.
type Duration time.Duration

// String delegates to time.Duration.String()
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON produces a formatted string of the form
// produced by time.Duration.String()
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON permits either: (1) strings of the form accepted by
// time.ParseDuration(), or (2) numeric values, which are interpreted as
// fractional seconds and must be finite and nonnegative.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if data[0] == '"' {
		unwrappedDuration, err := time.ParseDuration(string(data[1 : len(data)-1]))
		if err != nil {
			return err
		}

		*d = Duration(unwrappedDuration)
		return nil
	}

	seconds, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}

	parsed, err := deadline.ParseSeconds(seconds)
	if err != nil {
		return err
	}

	*d = Duration(parsed)
	return nil
}

// DecodeHook is a mapstructure hook that decodes strings and numbers into
// Duration fields, using the same conventions as UnmarshalJSON.  Pass this
// to viper via viper.DecodeHook when unmarshaling configuration.
func DecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(Duration(0)) {
			return data, nil
		}

		switch value := data.(type) {
		case string:
			unwrappedDuration, err := time.ParseDuration(value)
			return Duration(unwrappedDuration), err

		case float64:
			parsed, err := deadline.ParseSeconds(value)
			return Duration(parsed), err

		case int:
			parsed, err := deadline.ParseSeconds(float64(value))
			return Duration(parsed), err

		default:
			return data, nil
		}
	}
}
