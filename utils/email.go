package utils

import (
	"fmt"

	"github.com/raushankrgupta/nyakazi-storefront/config"
	"github.com/raushankrgupta/nyakazi-storefront/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendEmail sends an email using SendGrid
func SendEmail(toName, toEmail, subject, textContent, htmlContent string) error {
	if config.SendGridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}

	from := mail.NewEmail(config.StoreName, "no-reply@nyakaziorganics.co.ke")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(config.SendGridAPIKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if response.StatusCode >= 400 {
		Logger.Error("SendGrid API Error", zap.Int("status", response.StatusCode), zap.String("body", response.Body))
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	Logger.Info("Email sent", zap.String("to", toEmail), zap.Int("status", response.StatusCode))
	return nil
}

// ContactEmailBody renders a contact message as plain text
func ContactEmailBody(msg models.ContactMessage) string {
	return fmt.Sprintf("From: %s <%s>\nPhone: %s\nSubject: %s\n\n%s\n",
		msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message)
}

// NotifyContact forwards a contact-page message to the store inbox.
// Without a SendGrid key the message is only logged.
func NotifyContact(msg models.ContactMessage) error {
	if config.SendGridAPIKey == "" {
		Logger.Info("contact message received (email disabled)",
			zap.String("id", msg.ID),
			zap.String("name", msg.Name),
			zap.String("email", msg.Email),
			zap.String("subject", msg.Subject),
		)
		return nil
	}

	subject := msg.Subject
	if subject == "" {
		subject = "New message from the website"
	}
	return SendEmail(config.StoreName, config.ContactEmail, "[Contact] "+subject, ContactEmailBody(msg), "")
}
