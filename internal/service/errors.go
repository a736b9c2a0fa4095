package service

import "errors"

// Failure kinds surfaced to the dispatcher. Each one maps to a specific
// user-facing explanation; anything else is treated as a store failure.
var (
	// ErrNotRegistered is returned when the caller never completed /start.
	ErrNotRegistered = errors.New("user is not registered")
	// ErrInvalidRole is returned for a role outside {autista, at}.
	ErrInvalidRole = errors.New("invalid role")
	// ErrForbidden is returned when the caller's role does not permit the operation.
	ErrForbidden = errors.New("operation requires the AT role")
	// ErrInvalidGroup is returned for an empty or unusable group name.
	ErrInvalidGroup = errors.New("invalid group name")
	// ErrDuplicateGroup is returned when a group with the same name already exists.
	ErrDuplicateGroup = errors.New("group name already taken")
	// ErrGroupNotFound is returned when the referenced group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupFull is returned when joining a group at its member limit.
	ErrGroupFull = errors.New("group is full")
	// ErrNoGroup is returned when the caller belongs to no group yet.
	ErrNoGroup = errors.New("user belongs to no group")
	// ErrInvalidActivity is returned for an activity without a title.
	ErrInvalidActivity = errors.New("invalid activity")
	// ErrInvalidSchedule is returned for an activity scheduled in the past.
	ErrInvalidSchedule = errors.New("scheduled time is in the past")
)
