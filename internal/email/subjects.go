package email

const (
	subjectReceiptFmt       = "Your receipt %s from %s"
	subjectFeedbackThankYou = "Thank you for your feedback"
)
