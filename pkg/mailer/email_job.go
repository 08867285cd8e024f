package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Text/HTML are set directly, or Template names a known template
// rendered with Data by the worker.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
