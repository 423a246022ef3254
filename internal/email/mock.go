package email

import "sync"

// SentMail records one delivered message in the mock provider.
type SentMail struct {
	To       string
	Username string
	Link     string
}

// MockProvider collects messages instead of sending them. Used in tests and
// when no SMTP host is configured.
type MockProvider struct {
	mu   sync.Mutex
	Mail []SentMail
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) SendVerification(to, username, link string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Mail = append(p.Mail, SentMail{To: to, Username: username, Link: link})
	return nil
}

// Sent returns a copy of the recorded messages.
func (p *MockProvider) Sent() []SentMail {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]SentMail, len(p.Mail))
	copy(out, p.Mail)
	return out
}
