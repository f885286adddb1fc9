package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeJob builds the email enqueued after a successful registration.
func WelcomeJob(to string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to Inkpress",
		Text: "Your account is ready. Sign in to write your first post, " +
			"or claim a slug for it while you think it over.",
	}
}
