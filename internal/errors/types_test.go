package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseErrorBuilders(t *testing.T) {
	cause := stderrors.New("boom")
	err := Newf(ParamContractErrorCode, "parameter %q used twice in controller method", "id").
		WithLocation(SourceLocation{File: "users/user.controller.ts", Controller: "UserController", Method: "find"}).
		WithCause(cause).
		WithContext("parameter", "id").
		WithSuggestions("rename one of the parameters", "remove the duplicate marker")

	assert.Equal(t, ParamContractErrorCode, err.ErrorCode())
	assert.Contains(t, err.Error(), `parameter "id" used twice`)
	assert.Equal(t, "id", err.Context()["parameter"])
	assert.Len(t, err.Suggestions(), 2)
	assert.True(t, stderrors.Is(err, cause))

	loc := err.Location()
	assert.False(t, loc.IsEmpty())
	assert.Contains(t, loc.String(), "users/user.controller.ts")
	assert.Contains(t, loc.String(), "UserController")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("unexpected end of JSON input")
	err := Wrap(SnapshotErrorCode, "snapshot could not be decoded", cause)

	assert.Equal(t, SnapshotErrorCode, err.ErrorCode())
	assert.True(t, stderrors.Is(err, cause))
}

func TestInternal(t *testing.T) {
	err := Internal("qualifier survived resolution in %q", "x")
	assert.True(t, IsInternal(err))
	assert.False(t, IsInternal(New(RouteFormatErrorCode, "bad route")))
	assert.False(t, IsInternal(stderrors.New("plain")))
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	assert.True(t, multi.IsEmpty())

	multi.Add(New(RouteFormatErrorCode, "wildcard segments are not supported"))
	multi.Add(New(AmbiguousVerbErrorCode, "more than one verb marker"))

	require.Equal(t, 2, multi.Count())
	assert.Equal(t, RouteFormatErrorCode, multi.ErrorCode())
	assert.True(t, multi.HasCode(AmbiguousVerbErrorCode))
	assert.False(t, multi.HasCode(InternalErrorCode))
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")
}
