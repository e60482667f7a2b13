package errors

import (
	"net/http"

	"github.com/lorf543/payroll-sub000/internal/shared/apperror"
)

var (
	ErrDayClosed = apperror.New(
		apperror.CodeInvalidState,
		"work day is already in a terminal state",
		http.StatusConflict,
	)

	ErrSessionAlreadyClosed = apperror.New(
		apperror.CodeInvalidState,
		"session is already closed",
		http.StatusConflict,
	)

	ErrNoActiveDay = apperror.New(
		apperror.CodeInvalidState,
		"no active work day for this employee",
		http.StatusConflict,
	)

	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInterval,
		"end time precedes start time",
		http.StatusBadRequest,
	)

	ErrConcurrentWrite = apperror.New(
		apperror.CodeConcurrentModification,
		"another writer raced on this work day",
		http.StatusConflict,
	)

	ErrInvalidSessionType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown session type",
		http.StatusBadRequest,
	)

	ErrDayNotFound = apperror.New(
		apperror.CodeNotFound,
		"work day not found",
		http.StatusNotFound,
	)
)
