package service

import "errors"

var (
	ErrUnauthenticated      = errors.New("login required")
	ErrForbidden            = errors.New("not allowed for this role")
	ErrConfirmationRequired = errors.New("explicit confirmation required")
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrLoginFailed          = errors.New("login failed, check your credentials")

	ErrLoadCollections = errors.New("load todos/projects")
	ErrLoadUsers       = errors.New("load users")
)
