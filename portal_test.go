package portal

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-kit/kit/metrics/generic"
	"github.com/go-kit/log"
	"github.com/portal-go/portal/deadline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOpenValue(t *testing.T) {
	var (
		assert = assert.New(t)

		value, err = Open(func(p *Portal[int]) {
			p.Close(123)
		})
	)

	assert.NoError(err)
	assert.Equal(123, value)
}

func testOpenError(t *testing.T) {
	var (
		assert = assert.New(t)

		expected = errors.New("expected")

		value, err = Open(func(p *Portal[int]) {
			p.CloseError(expected)
		})
	)

	// the user error passes through verbatim
	assert.Equal(expected, err)
	assert.Zero(value)
}

func testOpenNotClosed(t *testing.T) {
	var (
		assert = assert.New(t)

		value, err = Open(func(p *Portal[int]) {
			p.Destroy()
		})
	)

	assert.Equal(ErrNotClosed, err)
	assert.Zero(value)
}

func testOpenTimeout(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		result = make(chan error)
	)

	go func() {
		_, err := Open(
			func(p *Portal[int]) {
				// never closes
			},
			WithTimeout(0),
		)

		result <- err
	}()

	select {
	case err := <-result:
		assert.Equal(ErrTimedOut, err)
	case <-time.After(time.Second):
		require.FailNow("Open did not time out promptly")
	}
}

func testOpenCrossGoroutine(t *testing.T) {
	var (
		assert = assert.New(t)

		value, err = Open(
			func(p *Portal[int]) {
				go func() {
					time.Sleep(50 * time.Millisecond)
					p.Close(7)
				}()
			},
			WithTimeout(5*time.Second),
		)
	)

	assert.NoError(err)
	assert.Equal(7, value)
}

func TestOpen(t *testing.T) {
	t.Run("Value", testOpenValue)
	t.Run("Error", testOpenError)
	t.Run("NotClosed", testOpenNotClosed)
	t.Run("Timeout", testOpenTimeout)
	t.Run("CrossGoroutine", testOpenCrossGoroutine)
}

func testDoubleCloseValueFirst(t *testing.T) {
	var (
		assert = assert.New(t)

		value, err = Open(func(p *Portal[string]) {
			p.Close("first")
			p.Close("second")
			p.CloseError(errors.New("ignored"))
		})
	)

	assert.NoError(err)
	assert.Equal("first", value)
}

func testDoubleCloseErrorFirst(t *testing.T) {
	var (
		assert = assert.New(t)

		expected = errors.New("first")

		value, err = Open(func(p *Portal[string]) {
			p.CloseError(expected)
			p.Close("ignored")
			p.CloseError(errors.New("also ignored"))
		})
	)

	assert.Equal(expected, err)
	assert.Zero(value)
}

func testCloseBeatsDestroy(t *testing.T) {
	var (
		assert = assert.New(t)

		value, err = Open(func(p *Portal[int]) {
			p.Close(42)
			p.Destroy()
		})
	)

	// destroy cannot overwrite a recorded result
	assert.NoError(err)
	assert.Equal(42, value)
}

func TestClose(t *testing.T) {
	t.Run("ValueFirst", testDoubleCloseValueFirst)
	t.Run("ErrorFirst", testDoubleCloseErrorFirst)
	t.Run("CloseBeatsDestroy", testCloseBeatsDestroy)
}

func TestCloseAfterTimeout(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		release = make(chan struct{})
		closed  = make(chan struct{})
	)

	value, err := Open(
		func(p *Portal[int]) {
			go func() {
				defer close(closed)
				<-release
				p.Close(999)
			}()
		},
		WithTimeout(0),
	)

	require.Equal(ErrTimedOut, err)
	assert.Zero(value)

	// a straggling close against the abandoned portal must be a no-op
	close(release)

	select {
	case <-closed:
		// passing
	case <-time.After(time.Second):
		require.FailNow("Close blocked against an abandoned portal")
	}
}

func testWithTimeoutNegative(t *testing.T) {
	var (
		assert = assert.New(t)

		invoked bool

		value, err = Open(
			func(p *Portal[int]) {
				invoked = true
			},
			WithTimeout(-time.Second),
		)
	)

	assert.Equal(deadline.ErrInvalidTimeout, err)
	assert.Zero(value)
	assert.False(invoked)
}

func testWithTimeoutSecondsValid(t *testing.T) {
	var (
		assert = assert.New(t)

		value, err = Open(
			func(p *Portal[int]) {
				p.Close(1)
			},
			WithTimeoutSeconds(1.5),
		)
	)

	assert.NoError(err)
	assert.Equal(1, value)
}

func testWithTimeoutSecondsInvalid(t *testing.T) {
	for _, seconds := range []float64{-1.0, math.NaN(), math.Inf(1)} {
		var (
			assert = assert.New(t)

			value, err = Open(
				func(p *Portal[int]) {
					p.Close(1)
				},
				WithTimeoutSeconds(seconds),
			)
		)

		assert.Equal(deadline.ErrInvalidTimeout, err)
		assert.Zero(value)
	}
}

func TestWithTimeout(t *testing.T) {
	t.Run("Negative", testWithTimeoutNegative)
	t.Run("SecondsValid", testWithTimeoutSecondsValid)
	t.Run("SecondsInvalid", testWithTimeoutSecondsInvalid)
}

func TestWithLogger(t *testing.T) {
	var (
		assert = assert.New(t)

		events []string

		logger = log.LoggerFunc(func(kv ...interface{}) error {
			for i := 0; i+1 < len(kv); i += 2 {
				if kv[i] == "msg" {
					events = append(events, kv[i+1].(string))
				}
			}

			return nil
		})

		value, err = Open(
			func(p *Portal[int]) {
				p.Close(1)
				p.Close(2)
			},
			WithLogger(logger),
		)
	)

	assert.NoError(err)
	assert.Equal(1, value)
	assert.Contains(events, "portal already closed")
}

func TestWithMetrics(t *testing.T) {
	var (
		assert = assert.New(t)

		completions = generic.NewCounter("completions")
		failures    = generic.NewCounter("failures")
	)

	_, err := Open(
		func(p *Portal[int]) {
			p.Close(1)
		},
		WithCompletions(completions),
		WithFailures(failures),
	)

	assert.NoError(err)
	assert.Equal(1.0, completions.Value())
	assert.Zero(failures.Value())

	_, err = Open(
		func(p *Portal[int]) {
			p.Destroy()
		},
		WithCompletions(completions),
		WithFailures(failures),
	)

	assert.Equal(ErrNotClosed, err)
	assert.Equal(1.0, completions.Value())
	assert.Equal(1.0, failures.Value())
}
