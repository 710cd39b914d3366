package posts

import "errors"

var (
	ErrMissingTitle     = errors.New("title is required")
	ErrMissingEventDate = errors.New("event date is required")
	ErrPostNotFound     = errors.New("volunteer post not found")
	ErrPostClosed       = errors.New("volunteer post is closed")
	ErrNGONotEligible   = errors.New("ngo not found, inactive or blacklisted")
)
