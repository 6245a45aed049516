package session

import "errors"

var (
	ErrExpired          = errors.New("session has expired")
	ErrNotFound         = errors.New("session not found")
	ErrNotAuthenticated = errors.New("authentication failed")
	ErrMissingIP        = errors.New("IP address is required")
	ErrEmptyUserID      = errors.New("user id is required")
	ErrTokenGeneration  = errors.New("failed to generate token")
	ErrSaveSession      = errors.New("failed to save session")
	ErrDeleteSession    = errors.New("failed to delete session")
)
