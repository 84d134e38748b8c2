package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"rentalops-backend/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendInvoice(ctx context.Context, to, businessName string, inv *domain.Invoice) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Invoice %s from %s", inv.Number, businessName))

	body := fmt.Sprintf("Hello,\n\nYour invoice %s from %s is ready.\n\n", inv.Number, businessName)
	for _, line := range inv.Lines {
		body += fmt.Sprintf("  %s: %s\n", line.Description, formatCents(line.AmountCents))
	}
	body += fmt.Sprintf("\nSubtotal: %s\nTax: %s\nTotal due: %s\n\nDue date: %s\n\nThank you,\n%s",
		formatCents(inv.SubtotalCents), formatCents(inv.TaxCents), formatCents(inv.TotalCents), inv.DueDate, businessName)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send invoice email: %w", err)
	}

	return nil
}

func (s *emailService) SendInvoiceReminder(ctx context.Context, to, businessName string, inv *domain.Invoice) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Reminder: invoice %s from %s is past due", inv.Number, businessName))

	body := fmt.Sprintf("Hello,\n\nThis is a reminder that invoice %s for %s was due on %s.\n\nPlease arrange payment at your earliest convenience.\n\nThank you,\n%s",
		inv.Number, formatCents(inv.TotalCents), inv.DueDate, businessName)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send invoice reminder: %w", err)
	}

	return nil
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, to, businessName string, p *domain.Payment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Payment received - %s", businessName))

	body := fmt.Sprintf("Hello,\n\nWe received your payment of %s.\n\nThank you for your business,\n%s",
		formatCents(p.AmountCents), businessName)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send payment receipt: %w", err)
	}

	return nil
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
