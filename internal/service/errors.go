package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")

	ErrConversationNotFound = errors.New("conversation not found")
	ErrForbidden            = errors.New("conversation belongs to another user")
	ErrConversationClosed   = errors.New("conversation is already closed")
	ErrInvalidState         = errors.New("feedback does not match the pending solution")
	ErrQueueFull            = errors.New("resolution queue is full")
	ErrQueueStopped         = errors.New("resolution queue is stopped")

	ErrIncidentNotFound  = errors.New("incident not found")
	ErrIncidentLocked    = errors.New("incident priority and category are locked once resolved or closed")
	ErrInvalidStatus     = errors.New("invalid incident status")
	ErrKnowledgeNotFound = errors.New("knowledge entry not found")

	ErrEmptyAnswer = errors.New("ai resolver returned an empty answer")
)
