package notification

import (
	"context"
	"time"

	"github.com/jhoicas/bundle-orders/pkg/logger"
)

const defaultSendTimeout = 10 * time.Second

// Dispatcher entrega alertas al Notifier fuera de la transacción, en un worker en background.
// Dispatch nunca bloquea: si la cola está llena la alerta se descarta y se registra en log.
type Dispatcher struct {
	notifier    Notifier
	queue       chan LowStockAlert
	log         *logger.Logger
	sendTimeout time.Duration
}

// NewDispatcher construye el dispatcher con una cola de queueSize alertas.
func NewDispatcher(notifier Notifier, queueSize int, log *logger.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		notifier:    notifier,
		queue:       make(chan LowStockAlert, queueSize),
		log:         log.Component("notification"),
		sendTimeout: defaultSendTimeout,
	}
}

// Dispatch encola alertas ya confirmadas (post-commit).
func (d *Dispatcher) Dispatch(alerts ...LowStockAlert) {
	for _, a := range alerts {
		select {
		case d.queue <- a:
			d.log.Debug().
				Str("alert_id", a.ID).
				Int64("product_id", a.ProductID).
				Int("pending", len(d.queue)).
				Msg("alerta encolada")
		default:
			d.log.Warn().
				Str("alert_id", a.ID).
				Int64("product_id", a.ProductID).
				Msg("cola de alertas llena, alerta descartada")
		}
	}
}

// Run consume la cola hasta que ctx se cancele; luego vacía lo pendiente (best-effort) y retorna.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case a := <-d.queue:
			d.send(a)
		case <-ctx.Done():
			d.flush()
			return nil
		}
	}
}

func (d *Dispatcher) flush() {
	for {
		select {
		case a := <-d.queue:
			d.send(a)
		default:
			return
		}
	}
}

func (d *Dispatcher) send(a LowStockAlert) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.notifier.NotifyLowStock(ctx, a); err != nil {
		d.log.Error().Err(err).
			Str("alert_id", a.ID).
			Int64("product_id", a.ProductID).
			Str("product", a.ProductName).
			Msg("envío de alerta de stock bajo")
		return
	}
	d.log.Info().
		Str("alert_id", a.ID).
		Int64("product_id", a.ProductID).
		Int("stock", a.CurrentStock).
		Msg("alerta de stock bajo enviada")
}
