package offer

import "errors"

var (
	ErrNotFound    = errors.New("not_found")
	ErrForbidden   = errors.New("forbidden")
	ErrNotBusiness = errors.New("not_business")
)

const (
	msgNotFound            = "Offer not found."
	msgDetailNotFound      = "Offer detail not found."
	msgForbidden           = "Permission denied"
	msgNotBusiness         = "Only business users can create offers"
	msgDetailCount         = "Exactly 3 details are required."
	msgDuplicateTypes      = "Offer types must be unique."
	msgOfferTypeRequired   = "offer_type is required for detail updates."
	msgUnknownOfferType    = "No detail with this offer_type exists on the offer."
	msgInvalidValue        = "Invalid value"
	msgBlank               = "This field may not be blank."
	msgNegative            = "Ensure this value is greater than or equal to 0."
	msgDecimalPlaces       = "Ensure that there are no more than 2 decimal places."
	msgDigits              = "Ensure that there are no more than 10 digits in total."
	msgInvalidDetailsField = "Details must be a JSON list."
)
