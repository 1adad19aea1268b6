package services

import "errors"

// Sentinel errors used by handlers to map failures onto HTTP status codes.
var (
	ErrTitleRequired      = errors.New("title is required")
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
