// Package transport defines request DTOs for the checkout module.
package transport

// CheckoutRequest is the body of POST /checkout: a payment confirmation with
// the address the receipt goes to.
type CheckoutRequest struct {
	Email string `json:"email" validate:"required,email"`
}
