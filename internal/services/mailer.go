package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"sync"

	"giftmart/internal/models"
)

// MailerInterface sends operational notifications. Every method reports
// success as a boolean and never returns an error: mail is best-effort and
// must not fail the operation that triggered it.
type MailerInterface interface {
	SendOrderNotificationToAdmin(ctx context.Context, order *models.Order) bool
	SendLowStockAlert(ctx context.Context, products []*models.Product) bool
}

// SMTPConfig holds the outbound mail settings, usually read from the
// environment at startup.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// AdminEmail is the fallback recipient when no admin_email config row
	// exists.
	AdminEmail string
}

type smtpMailer struct {
	cfg       SMTPConfig
	configSvc ConfigServiceInterface

	// The transport is built on first send, not at startup, so a dead SMTP
	// host cannot block boot.
	once sync.Once
	auth smtp.Auth
	addr string
}

func NewSMTPMailer(cfg SMTPConfig, configSvc ConfigServiceInterface) MailerInterface {
	return &smtpMailer{cfg: cfg, configSvc: configSvc}
}

func (m *smtpMailer) init() {
	m.addr = m.cfg.Host + ":" + m.cfg.Port
	if m.cfg.Username != "" {
		m.auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
}

func (m *smtpMailer) SendOrderNotificationToAdmin(ctx context.Context, order *models.Order) bool {
	to := m.adminRecipient(ctx)
	if to == "" {
		log.Printf("mailer: no admin recipient configured, skipping order notification for %s", order.ID)
		return false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New order %s\n\n", order.ID)
	fmt.Fprintf(&b, "Customer: %s <%s>\n", order.CustomerName, order.CustomerEmail)
	if order.CustomerPhone != nil {
		fmt.Fprintf(&b, "Phone: %s\n", *order.CustomerPhone)
	}
	if order.CustomerAddress != nil {
		fmt.Fprintf(&b, "Address: %s\n", *order.CustomerAddress)
	}
	b.WriteString("\nItems:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  - %s x%d @ %.0f = %.0f\n", item.ProductName, item.Quantity, item.ProductPrice, item.TotalPrice)
	}
	fmt.Fprintf(&b, "\nTotal: %.0f\n", order.TotalPrice)
	if order.Note != nil {
		fmt.Fprintf(&b, "Note: %s\n", *order.Note)
	}

	subject := fmt.Sprintf("New order from %s", order.CustomerName)
	return m.send(to, subject, b.String())
}

func (m *smtpMailer) SendLowStockAlert(ctx context.Context, products []*models.Product) bool {
	if len(products) == 0 {
		return true
	}
	to := m.adminRecipient(ctx)
	if to == "" {
		log.Print("mailer: no admin recipient configured, skipping low stock alert")
		return false
	}

	var b strings.Builder
	b.WriteString("The following products are running low on stock:\n\n")
	for _, p := range products {
		fmt.Fprintf(&b, "  - %s (%s): %d left\n", p.Name, p.SKU, p.Quantity)
	}

	return m.send(to, fmt.Sprintf("Low stock alert: %d products", len(products)), b.String())
}

func (m *smtpMailer) send(to, subject, body string) bool {
	if m.cfg.Host == "" {
		log.Print("mailer: SMTP host not configured, dropping message")
		return false
	}
	m.once.Do(m.init)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.cfg.From, to, subject, body)

	if err := smtp.SendMail(m.addr, m.auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		log.Printf("mailer: send to %s failed: %v", to, err)
		return false
	}
	return true
}

// adminRecipient resolves the notification address from system config,
// falling back to the startup setting.
func (m *smtpMailer) adminRecipient(ctx context.Context) string {
	if m.configSvc != nil {
		if email, err := m.configSvc.GetValue(ctx, models.ConfigAdminEmail); err == nil && email != "" {
			return email
		}
	}
	return m.cfg.AdminEmail
}
