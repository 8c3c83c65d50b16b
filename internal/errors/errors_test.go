package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	goerrors "github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	cause := stderrors.New("connection refused")

	err := Unavailable("open posting store", cause)
	assert.Equal(t, "open posting store: connection refused", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, string(err.Stack()), "errors_test.go")

	assert.Equal(t, "days must be positive", Invalidf("days must be positive").Error())
	assert.Equal(t, "migrate", Internal("migrate", nil).Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid", Invalidf("bad %s", "days"), KindInvalid},
		{"wrapped", fmt.Errorf("handler: %w", Unavailable("redis", stderrors.New("down"))), KindUnavailable},
		{"plain", stderrors.New("plain"), KindInternal},
		{"nil", nil, KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
	assert.Equal(t, "unavailable", KindUnavailable.String())
}

func TestStackOfTracedCauseIsKept(t *testing.T) {
	cause := goerrors.New("deep failure")

	err := Internal("report", cause)
	assert.Equal(t, cause.Stack(), err.Stack())
}

func TestRecovered(t *testing.T) {
	var err *Error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = Recovered("report failed", r)
			}
		}()
		var m map[string]int
		m["boom"]++
	}()

	require.NotNil(t, err)
	assert.Equal(t, KindInternal, err.Kind)
	assert.Contains(t, err.Error(), "report failed")
	assert.NotEmpty(t, err.Stack())

	err = Recovered("op", "not an error")
	assert.Equal(t, "op: panic: not an error", err.Error())
}
