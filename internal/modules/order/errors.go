package order

import "errors"

var (
	ErrNotFound         = errors.New("not_found")
	ErrDetailNotFound   = errors.New("offer_detail_not_found")
	ErrBusinessNotFound = errors.New("business_not_found")
	ErrForbidden        = errors.New("forbidden")
	ErrNotCustomer      = errors.New("not_customer")
	ErrNotAdmin         = errors.New("not_admin")
)

const (
	msgNotFound         = "Order not found."
	msgDetailNotFound   = "Offer detail not found."
	msgBusinessNotFound = "Business user not found."
	msgForbidden        = "Permission denied"
	msgNotCustomer      = "Only customers can create orders"
	msgNotAdmin         = "Only staff users can delete orders"
)
