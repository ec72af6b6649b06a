package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	bad := NewBadRequestError("Validation failed", true, nil, []FieldError{{Field: "title", Error: "is required"}})
	assert.Equal(t, "BAD_REQUEST", bad.Code)
	assert.Equal(t, http.StatusBadRequest, bad.Status)
	assert.Len(t, bad.Errors, 1)

	code := "BOOKMARK_NOT_FOUND"
	nf := NewNotFoundError("Bookmark not found", false, &code)
	assert.Equal(t, code, nf.Code)
	assert.Equal(t, http.StatusNotFound, nf.Status)

	assert.Equal(t, "TOO_MANY_REQUESTS", NewTooManyRequestsError("slow down").Code)

	internal := NewInternalServerError()
	assert.Equal(t, "INTERNAL_SERVER_ERROR", internal.Code)
	assert.Equal(t, "Internal Server Error", internal.Message)
}

func TestHTTPErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFoundError("missing", false, nil))

	assert.True(t, errors.Is(err, &HTTPError{}))
	assert.True(t, errors.Is(err, &HTTPError{Status: http.StatusNotFound}))
	assert.False(t, errors.Is(err, &HTTPError{Status: http.StatusBadRequest}))
	assert.False(t, errors.Is(err, ErrNotFound))
}
