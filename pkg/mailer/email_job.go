package mailer

// EmailJob is the queue payload the API publishes and the email worker
// consumes. A job either carries prerendered Subject/Text/HTML or names
// a Template plus the Data to render it with.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome" or "comment_added"
	Data     map[string]any `json:"data,omitempty"`
}
