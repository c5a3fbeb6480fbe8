package models

import (
	"strings"
	"time"
)

// ContactMessage represents a message sent from the contact page
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Missing returns the names of required fields that are blank
func (c ContactMessage) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Email) == "" || !strings.Contains(c.Email, "@") {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(c.Message) == "" {
		missing = append(missing, "message")
	}
	return missing
}
