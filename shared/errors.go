package shared

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error kinds surfaced to callers. STORAGE_UNAVAILABLE is the only
// retryable kind; submission upserts are keyed so a full retry is safe.
const (
	KindLessonNotFound    = "LESSON_NOT_FOUND"
	KindNoGradableContent = "NO_GRADABLE_CONTENT"
	KindInvalidAnswers    = "INVALID_ANSWER_SHAPE"
	KindLessonLocked      = "LESSON_LOCKED"
	KindStorage           = "STORAGE_UNAVAILABLE"
	KindBadRequest        = "BAD_REQUEST"
	KindUnauthorized      = "UNAUTHORIZED"
	KindInternal          = "INTERNAL_ERROR"
)

type AppError struct {
	StatusCode int         `json:"-"`
	Kind       string      `json:"kind"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Err        error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Kind + ": " + e.Err.Error()
	}
	return e.Kind + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may safely resubmit.
func (e *AppError) Retryable() bool {
	return e.Kind == KindStorage
}

func NewAppError(statusCode int, kind string, err error, message string) *AppError {
	return &AppError{StatusCode: statusCode, Kind: kind, Message: message, Err: err}
}

func NewLessonNotFoundError(err error) *AppError {
	return NewAppError(fiber.StatusNotFound, KindLessonNotFound, err, "Lesson not found")
}

func NewNoGradableContentError(err error) *AppError {
	return NewAppError(fiber.StatusUnprocessableEntity, KindNoGradableContent, err, "Lesson has no questions to grade")
}

func NewInvalidAnswersError(err error, message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, KindInvalidAnswers, err, message)
}

func NewLessonLockedError(err error, message string) *AppError {
	return NewAppError(fiber.StatusForbidden, KindLessonLocked, err, message)
}

func NewStorageError(err error) *AppError {
	return NewAppError(fiber.StatusServiceUnavailable, KindStorage, err, "Storage temporarily unavailable, retry the submission")
}

func NewBadRequestError(err error, message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, KindBadRequest, err, message)
}

func NewUnauthorizedError(err error, message string) *AppError {
	return NewAppError(fiber.StatusUnauthorized, KindUnauthorized, err, message)
}

func NewInternalError(err error, message string) *AppError {
	return NewAppError(fiber.StatusInternalServerError, KindInternal, err, message)
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
