package review

import "errors"

var (
	ErrNotFound    = errors.New("not_found")
	ErrForbidden   = errors.New("forbidden")
	ErrNotCustomer = errors.New("not_customer")
)

const nonFieldErrors = "non_field_errors"

const (
	msgNotFound        = "Review not found."
	msgForbidden       = "You are not the owner of this review."
	msgNotCustomer     = "Only customers can create reviews"
	msgRatingRange     = "Rating must be between 1 and 5."
	msgNotBusinessUser = "Business user not found or not a business profile."
	msgAlreadyReviewed = "You have already reviewed this business user."
	msgInvalidValue    = "Invalid value"
	msgRequired        = "This field is required."
)
