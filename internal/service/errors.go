package service

import "errors"

var (
	// 凭证与校验
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrInvalidInput         = errors.New("all fields are required")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters long")
	ErrEmailTaken           = errors.New("email already registered")
	ErrUsernameTaken        = errors.New("username already taken")

	// 留言生命周期
	ErrNoteNotFound = errors.New("note not found")
	ErrForbidden    = errors.New("you are not the author of this note")
	ErrEmptyText    = errors.New("text must not be empty")
	ErrInvalidMood  = errors.New("mood must be one of joy, gratitude, hope")

	// 精选语录
	ErrPromptNotReady = errors.New("featured prompt not available yet")

	ErrInternalServer = errors.New("internal server error")
)
