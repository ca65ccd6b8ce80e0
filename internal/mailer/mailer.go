package mailer

import (
	"fmt"
	"log"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/config"
	"github.com/chandrashekarRravi/Krishik-Agri-Business-Incubator-sub000/internal/models"
)

// Mailer dispatches transactional mail. Order placement treats a send failure
// as a caveat, never as a reason to roll back the persisted order.
type Mailer interface {
	SendOrderConfirmation(to, name string, order models.Order) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTP(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendOrderConfirmation(to, name string, order models.Order) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order %s confirmed", order.OrderNumber))
	msg.SetBody("text/plain", orderConfirmationBody(name, order))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Println("[MAIL] [ERROR] order confirmation failed:", err)
		return err
	}

	log.Println("[MAIL] [INFO] order confirmation sent:", order.OrderNumber)
	return nil
}

func orderConfirmationBody(name string, order models.Order) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your order %s has been placed.\n\n"+
			"Product: %s\n"+
			"Quantity: %d\n"+
			"Total: %.2f\n"+
			"Shipping to: %s\n"+
			"Estimated delivery: %s\n\n"+
			"Krishik Agri Business Incubator",
		name,
		order.OrderNumber,
		order.ProductName,
		order.Quantity,
		order.Total,
		order.ShippingAddress,
		order.EstimatedDelivery.Format(time.DateOnly),
	)
}
