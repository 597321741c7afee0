package domain

import "time"

// Notification is an in-app notification row shown in the dashboard
type Notification struct {
	ID         string            `json:"id"`
	Recipient  string            `json:"recipient"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Read       bool              `json:"read"`
	CreatedAt  time.Time         `json:"created_at"`
}
