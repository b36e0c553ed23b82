package domain

import "errors"

var (
	ErrMissingField     = errors.New("missing fields")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrUnknownUser      = errors.New("unknown user")
	ErrUnknownParty     = errors.New("unknown party")
	ErrDuplicateUserID  = errors.New("user id already registered")
	ErrDuplicateContact = errors.New("phone number already registered")
	ErrStorage          = errors.New("storage error")
)
