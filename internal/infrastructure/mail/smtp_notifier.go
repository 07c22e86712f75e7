package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/bundle-orders/internal/application/notification"
	"github.com/jhoicas/bundle-orders/pkg/config"
)

var _ notification.Notifier = (*SMTPNotifier)(nil)

// Sender abstrae *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier envía la alerta de stock bajo por correo al mayorista.
type SMTPNotifier struct {
	sender Sender
	from   string
	to     string
}

// NewSMTPNotifier construye el notifier con un gomail.Dialer a partir de la configuración.
func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	return NewSMTPNotifierWithSender(
		gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg.From, cfg.To,
	)
}

// NewSMTPNotifierWithSender permite inyectar el Sender (tests).
func NewSMTPNotifierWithSender(sender Sender, from, to string) *SMTPNotifier {
	return &SMTPNotifier{sender: sender, from: from, to: to}
}

// NotifyLowStock construye y envía el correo. gomail no acepta contexto: si ctx vence primero
// se retorna ctx.Err() y el envío en curso termina por su cuenta.
func (n *SMTPNotifier) NotifyLowStock(ctx context.Context, alert notification.LowStockAlert) error {
	msg := n.buildMessage(alert)

	done := make(chan error, 1)
	go func() { done <- n.sender.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send low stock mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *SMTPNotifier) buildMessage(a notification.LowStockAlert) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", fmt.Sprintf("Low stock alert: %s", a.ProductName))
	m.SetHeader("X-Alert-ID", a.ID)
	m.SetBody("text/plain", fmt.Sprintf(
		"Stock dropped to or below 20%% of its initial level.\n\nProduct: %s (id %d)\nCurrent stock: %d\nLow stock threshold: %s\nRaised at: %s\n",
		a.ProductName, a.ProductID, a.CurrentStock, a.Threshold.String(), a.RaisedAt.UTC().Format("2006-01-02 15:04:05 MST"),
	))
	return m
}
