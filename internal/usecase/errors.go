package usecase

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrReloadInProgress = errors.New("reload in progress")
	ErrInternal         = errors.New("internal error")
)
