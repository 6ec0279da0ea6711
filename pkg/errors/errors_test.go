package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		check    func(error) bool
	}{
		{
			name:     "not found",
			err:      NewNotFoundError("herb Ephedra"),
			wantType: ErrorTypeNotFound,
			check:    IsNotFound,
		},
		{
			name:     "invalid parameter",
			err:      NewInvalidParameterError("ob_threshold must be within [0, 100]"),
			wantType: ErrorTypeInvalidParameter,
			check:    IsInvalidParameter,
		},
		{
			name:     "datasource timeout",
			err:      NewDataSourceTimeoutError("herb lookup", stderrors.New("context deadline exceeded")),
			wantType: ErrorTypeDataSourceTimeout,
			check:    IsDataSourceTimeout,
		},
		{
			name:     "layout",
			err:      NewLayoutError("graph has no nodes"),
			wantType: ErrorTypeLayout,
			check:    IsLayout,
		},
		{
			name:     "internal",
			err:      NewInternalError("render failed", stderrors.New("disk full")),
			wantType: ErrorTypeInternal,
			check:    IsInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, TypeOf(tt.err))
			assert.True(t, tt.check(tt.err))
			assert.Contains(t, tt.err.Error(), string(tt.wantType))
		})
	}
}

func TestWrapPreservesType(t *testing.T) {
	inner := NewNotFoundError("disease Inflammation")
	wrapped := Wrap(inner, "intersect targets")

	assert.True(t, IsNotFound(wrapped))
	assert.Contains(t, wrapped.Error(), "intersect targets")
	assert.Contains(t, wrapped.Error(), "disease Inflammation")
}

func TestWrapForeignErrorBecomesInternal(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "loading catalog")

	assert.True(t, IsInternal(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "anything"))
}

func TestPredicatesThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewInvalidParameterError("max_nodes must be positive"))
	assert.True(t, IsInvalidParameter(err))
	assert.False(t, IsNotFound(err))
}
