package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, MetadataFor(CodeNotFound).HTTPStatus)
	assert.Equal(t, http.StatusForbidden, MetadataFor(CodeForbidden).HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
	assert.Equal(t, http.StatusTooManyRequests, MetadataFor(CodeRateLimit).HTTPStatus)
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(CodeDependency, cause, "sending mail")

	require.NotNil(t, err)
	assert.Equal(t, CodeDependency, err.Code())
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, "DEPENDENCY_ERROR: sending mail", err.Error())
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	inner := New(CodeNotFound, "order not found")
	wrapped := fmt.Errorf("handling request: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())
	assert.Equal(t, "order not found", typed.Message())
}

func TestDumpCollectsChain(t *testing.T) {
	inner := New(CodeConflict, "duplicate code")
	wrapped := fmt.Errorf("saving supplier: %w", inner)

	dump := Dump(wrapped)
	assert.Equal(t, CodeConflict, dump.Code)
	assert.Len(t, dump.Chain, 2)
}
