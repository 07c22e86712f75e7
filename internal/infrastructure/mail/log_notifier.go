package mail

import (
	"context"

	"github.com/jhoicas/bundle-orders/internal/application/notification"
	"github.com/jhoicas/bundle-orders/pkg/logger"
)

var _ notification.Notifier = (*LogNotifier)(nil)

// LogNotifier registra la alerta en el log. Se usa cuando no hay SMTP configurado (desarrollo).
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notifier de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("mail")}
}

// NotifyLowStock escribe la alerta como warning; nunca falla.
func (n *LogNotifier) NotifyLowStock(_ context.Context, a notification.LowStockAlert) error {
	n.log.Warn().
		Str("alert_id", a.ID).
		Int64("product_id", a.ProductID).
		Str("product", a.ProductName).
		Int("stock", a.CurrentStock).
		Str("threshold", a.Threshold.String()).
		Msg("stock bajo (SMTP no configurado, solo log)")
	return nil
}
