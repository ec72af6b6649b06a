package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "not null violation",
			err:        &pgconn.PgError{Code: "23502", Severity: "ERROR", TableName: "bookmarks", ColumnName: "title"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BOOKMARK_REQUIRED",
			wantMsg:    "The Title is required",
		},
		{
			name:       "unique violation with table_column_key constraint",
			err:        &pgconn.PgError{Code: "23505", TableName: "bookmarks", ConstraintName: "bookmarks_url_key"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BOOKMARK_ALREADY_EXISTS",
			wantMsg:    "A Bookmark with this Url already exists",
		},
		{
			name:       "check violation",
			err:        &pgconn.PgError{Code: "23514", TableName: "bookmarks", ColumnName: "title"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BOOKMARK_INVALID",
			wantMsg:    "The Title value does not meet required conditions",
		},
		{
			name:       "unclassified postgres error",
			err:        &pgconn.PgError{Code: "XX000", Message: "internal"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "no rows",
			err:        fmt.Errorf("select: %w", pgx.ErrNoRows),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "not found sentinel",
			err:        fmt.Errorf("%w: Bookmark NOT found with id: 3", errs.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "invalid argument sentinel",
			err:        fmt.Errorf("%w: limit must be greater than 0", errs.ErrInvalidArgument),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(tt.err), &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, httpErr.Message)
			}
		})
	}
}

func TestHandleErrorKeepsHTTPError(t *testing.T) {
	original := errs.NewTooManyRequestsError("slow down")
	assert.Same(t, original, HandleError(original))
}

func TestUserMessage(t *testing.T) {
	pgErr := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23502", TableName: "bookmarks", ColumnName: "url"})
	assert.Equal(t, "The Url is required", UserMessage(pgErr))
	assert.Equal(t, genericMessage, UserMessage(errors.New("connection refused")))
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "FATAL"})
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, SeverityFatal, converted.Severity)
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.Equal(t, SeverityError, MapSeverity("SOMETHING"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "url", extractColumnForUniqueViolation("unique_bookmarks_url"))
	assert.Equal(t, "url", extractColumnForUniqueViolation("bookmarks_url_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_bookmarks"))
}
