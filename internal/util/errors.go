package util

import "errors"

var (
	// ErrStorageUnavailable marks transient backend failures; callers may
	// retry or fall back to the cached completion set.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrPermissionDenied = errors.New("permission denied")

	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrAdminEmailMismatch  = errors.New("administrator role requires the configured admin email")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrAlreadyGraded       = errors.New("submission already graded")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeNotAllowed  = errors.New("file type not allowed")
	ErrNoProgressProviders = errors.New("no progress provider available")
)
