package ngo

import "errors"

var (
	ErrMissingName           = errors.New("ngo name is required")
	ErrNGONotFound           = errors.New("ngo not found")
	ErrDuplicateRegistration = errors.New("registration number or darpan id already exists")
	ErrAlreadyBlacklisted    = errors.New("ngo is already blacklisted")
	ErrNotBlacklisted        = errors.New("ngo is not blacklisted")
	ErrNoFieldsToUpdate      = errors.New("no fields to update")
	ErrUnknownField          = errors.New("unknown field in update request")
	ErrInvalidDate           = errors.New("invalid date, expected YYYY-MM-DD")
)
