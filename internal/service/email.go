package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// send delivers one plain-text email through SendGrid. With no API key
// configured (local development) the message is logged instead of sent.
func (s *emailService) send(ctx context.Context, to, subject, body string) error {
	if s.apiKey == "" {
		logger.Info("Email (not sent, no API key configured)", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendReportSubmittedNotification(ctx context.Context, email, reportID, rentalID string, totalCost float64) error {
	subject := "Damage report awaiting review"
	body := fmt.Sprintf(
		"A damage report for rental %s was submitted for review.\n\nReport: %s\nClaimed total: %.2f\n\nPlease review it in the back office.\n\nPro Rentals",
		rentalID, reportID, totalCost)
	return s.send(ctx, email, subject, body)
}

func (s *emailService) SendReportApprovedNotification(ctx context.Context, email, reportID string, totalCost float64, notes string) error {
	subject := "Damage report approved"
	body := fmt.Sprintf("Your damage report %s was approved with a total of %.2f.", reportID, totalCost)
	if notes != "" {
		body += fmt.Sprintf("\n\nApprover notes: %s", notes)
	}
	body += "\n\nPro Rentals"
	return s.send(ctx, email, subject, body)
}

func (s *emailService) SendReportRejectedNotification(ctx context.Context, email, reportID, reason string, category domain.RejectionCategory) error {
	subject := "Damage report rejected"
	body := fmt.Sprintf(
		"Your damage report %s was rejected.\n\nCategory: %s\nReason: %s\n\nPro Rentals",
		reportID, category, reason)
	return s.send(ctx, email, subject, body)
}

func (s *emailService) SendReportBilledNotification(ctx context.Context, email, reportID, billingReference string, amount float64) error {
	subject := "Damage report billed"
	body := fmt.Sprintf(
		"Damage report %s was billed for %.2f.\n\nBilling reference: %s\n\nPro Rentals",
		reportID, amount, billingReference)
	return s.send(ctx, email, subject, body)
}

func (s *emailService) SendInspectionReminder(ctx context.Context, email, reportID, rentalID string, dueAt time.Time) error {
	subject := "Inspection task overdue"
	body := fmt.Sprintf(
		"The inspection for rental %s (report %s) was due at %s and is still pending.\n\nPro Rentals",
		rentalID, reportID, dueAt.Format(time.RFC1123))
	return s.send(ctx, email, subject, body)
}

func (s *emailService) SendStaleReportReminder(ctx context.Context, email, reportID string, submittedAt time.Time) error {
	subject := "Damage report still awaiting review"
	body := fmt.Sprintf(
		"Damage report %s has been waiting for review since %s.\n\nPro Rentals",
		reportID, submittedAt.Format(time.RFC1123))
	return s.send(ctx, email, subject, body)
}
