package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrEmptyDescription  = errors.New("description cannot be empty")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTaskID     = errors.New("invalid task ID")
	ErrCorruptStore      = errors.New("tasks file is corrupt")
	ErrDuplicateTaskID   = errors.New("duplicate task ID")
	ErrConfigExists      = errors.New("config file already exists")
	ErrUnknownFormat     = errors.New("unknown export format")
	ErrInvalidCorruptOpt = errors.New("invalid on_corrupt policy")
)
