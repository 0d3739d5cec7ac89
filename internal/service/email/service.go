package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"nysc-services/internal/config"
)

type Service interface {
	SendTransferReceived(ctx context.Context, toEmail, fullName, serviceName, reference string) error
	SendStatusUpdate(ctx context.Context, toEmail, fullName, serviceName, status string) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("NYSC Platform <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendTransferReceived(ctx context.Context, toEmail, fullName, serviceName, reference string) error {
	data := struct {
		Title     string
		Name      string
		Service   string
		Reference string
		Link      string
	}{
		Title:     "Transaction Received - NYSC Platform",
		Name:      fullName,
		Service:   serviceName,
		Reference: reference,
		Link:      fmt.Sprintf("https://%s/dashboard", s.config.Domain),
	}
	return s.sendEmail(toEmail, "We received your transaction details", "transfer_received.html", data)
}

func (s *service) SendStatusUpdate(ctx context.Context, toEmail, fullName, serviceName, status string) error {
	data := struct {
		Title   string
		Name    string
		Service string
		Status  string
		Link    string
	}{
		Title:   "Application Update - NYSC Platform",
		Name:    fullName,
		Service: serviceName,
		Status:  status,
		Link:    fmt.Sprintf("https://%s/dashboard", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Your %s application was %s", serviceName, status), "status_update.html", data)
}
