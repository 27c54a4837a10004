package domain

import "errors"

// Sentinel errors shared by services and mapped to HTTP statuses by controllers.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrCaptchaFailed = errors.New("captcha failed")
	ErrRateLimited   = errors.New("already requested recently")
	ErrUnauthorized  = errors.New("unauthorized")
)
