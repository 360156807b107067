package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAnonymous          = errors.New("no authenticated user")
	ErrPostNotFound       = errors.New("post not found")
	ErrAuthorNotFound     = errors.New("author not found")
	ErrImagesDisabled     = errors.New("image upload not configured")
)
