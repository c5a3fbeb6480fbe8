package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/nyakazi-storefront/models"
	"github.com/raushankrgupta/nyakazi-storefront/utils"
)

// ContactRequest represents the payload of the contact form
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (c ContactRequest) toMessage() models.ContactMessage {
	return models.ContactMessage{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(c.Name),
		Email:     strings.TrimSpace(c.Email),
		Phone:     strings.TrimSpace(c.Phone),
		Subject:   strings.TrimSpace(c.Subject),
		Message:   strings.TrimSpace(c.Message),
		CreatedAt: time.Now(),
	}
}

// submitContact validates and forwards a contact message.
// The returned status is meant for the HTTP response.
func (h *Handler) submitContact(logMessageBuilder *strings.Builder, req ContactRequest) (models.ContactMessage, int, error) {
	msg := req.toMessage()
	if missing := msg.Missing(); len(missing) > 0 {
		return msg, http.StatusBadRequest, fmt.Errorf("missing or invalid fields: %s", strings.Join(missing, ", "))
	}

	if err := h.notify(msg); err != nil {
		utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("Failed to deliver contact message: %v", err))
		return msg, http.StatusBadGateway, fmt.Errorf("could not send your message, please try again or reach us on WhatsApp")
	}

	utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("Contact message %s from %s", msg.ID, msg.Email))
	return msg, http.StatusAccepted, nil
}

// ContactHandler handles contact form submissions sent as JSON
func (h *Handler) ContactHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Contact API]")

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	msg, status, err := h.submitContact(&logMessageBuilder, req)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), status)
		return
	}

	utils.RespondJSON(w, status, map[string]string{
		"id":      msg.ID,
		"message": "Thank you for your message! We'll get back to you within 24 hours.",
	})
}
