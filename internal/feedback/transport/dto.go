// Package transport defines request and response DTOs for the feedback module.
package transport

// SubmitFeedbackRequest is the body of POST /feedback.
type SubmitFeedbackRequest struct {
	Rating  *int   `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
	Email   string `json:"email" validate:"omitempty,email"`
}
