package notification

// Outbox acumula las alertas publicadas durante una unidad de trabajo.
// Se drena solo después del Commit; si la transacción hace Rollback se descarta.
// No es seguro para uso concurrente: pertenece a una única transacción.
type Outbox struct {
	alerts []LowStockAlert
}

// NewOutbox crea un outbox vacío.
func NewOutbox() *Outbox {
	return &Outbox{}
}

// Publish registra una alerta pendiente.
func (o *Outbox) Publish(alert LowStockAlert) {
	o.alerts = append(o.alerts, alert)
}

// Len número de alertas pendientes.
func (o *Outbox) Len() int {
	return len(o.alerts)
}

// Drain devuelve las alertas pendientes en orden de publicación y vacía el outbox.
func (o *Outbox) Drain() []LowStockAlert {
	out := o.alerts
	o.alerts = nil
	return out
}
