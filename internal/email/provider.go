package email

// Provider sends outbound mail. Sends are best-effort: a failure is returned
// to the caller, which logs it and continues — it never rolls back the
// identity write that triggered the send.
type Provider interface {
	// SendVerification sends the email-ownership verification message with
	// the confirmation link.
	SendVerification(to, username, link string) error
}
