package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brightpath-edu/academy_api/shared"
)

func TestHandleErrorNil(t *testing.T) {
	svc := &SqlService{}
	assert.NoError(t, svc.HandleError(nil))
}

func TestHandleErrorPassesThroughAppErrors(t *testing.T) {
	svc := &SqlService{}
	appErr := shared.NewLessonLockedError(errors.New("gate"), "Locked")

	assert.Equal(t, error(appErr), svc.HandleError(appErr))
}

func TestHandleErrorRecordNotFound(t *testing.T) {
	svc := &SqlService{}

	err := svc.HandleError(gorm.ErrRecordNotFound)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, shared.KindLessonNotFound, appErr.Kind)
	assert.False(t, appErr.Retryable())
}

func TestHandleErrorClassifiesStorageFailures(t *testing.T) {
	svc := &SqlService{}

	cases := map[string]error{
		"duplicated key":    gorm.ErrDuplicatedKey,
		"unique constraint": fmt.Errorf("UNIQUE constraint failed: lesson_progress.user_id"),
		"connection":        errors.New("dial tcp 127.0.0.1:5432: connection refused"),
	}
	for name, cause := range cases {
		err := svc.HandleError(cause)
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok, name)
		assert.Equal(t, 503, appErr.StatusCode, name)
		assert.Equal(t, shared.KindStorage, appErr.Kind, name)
		assert.True(t, appErr.Retryable(), name)
	}
}
