package profile

import "errors"

var (
	ErrNotFound  = errors.New("not_found")
	ErrForbidden = errors.New("forbidden")
)

const (
	msgNotFound   = "Profile not found."
	msgForbidden  = "You can only edit your own profile."
	msgEmailTaken = "This email address is already taken"
)
