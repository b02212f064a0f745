package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationFailed_MapsToBadRequest(t *testing.T) {
	err := ValidationFailed("invalid request format")

	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "invalid request format", err.RawText())
}

func TestStageErrors_MapToInternalServerError(t *testing.T) {
	raw := fmt.Errorf("collaborator exploded")

	cases := []struct {
		appErr   *AppError
		wantType ErrorType
	}{
		{NewDecodeError(raw), DecodeError},
		{NewBlobError(raw), BlobError},
		{NewStorageError(raw), StorageError},
		{NewNotificationError(raw), NotificationError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.wantType, tc.appErr.Type)
		assert.Equal(t, http.StatusInternalServerError, tc.appErr.HTTPStatus)
		// The caller-visible error text is the raw collaborator error, verbatim.
		assert.Equal(t, "collaborator exploded", tc.appErr.RawText())
	}
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, StorageError, "ignored"))
}

func TestWrap_PreservesRawForErrorsIs(t *testing.T) {
	sentinel := errors.New("sentinel")
	wrapped := Wrap(fmt.Errorf("outer: %w", sentinel), BlobError, "blob failed")

	require.NotNil(t, wrapped)
	assert.True(t, errors.Is(wrapped, sentinel))
}

func TestAppError_ErrorString(t *testing.T) {
	withDetail := New(StorageError, "record write failed", "table missing")
	assert.Equal(t, "STORAGE_ERROR: record write failed (table missing)", withDetail.Error())

	withoutDetail := InternalServerError("boom")
	assert.Equal(t, "SERVER_ERROR: boom", withoutDetail.Error())
}
