package auth

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	msgPasswordsMismatch  = "Passwords must match"
	msgUsernameTaken      = "This username is already taken"
	msgEmailTaken         = "This email address is already taken"
	msgInvalidCredentials = "Invalid username or password."
)
