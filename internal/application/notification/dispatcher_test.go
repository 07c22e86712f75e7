package notification_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bundle-orders/internal/application/notification"
	"github.com/jhoicas/bundle-orders/pkg/logger"
)

type recordingNotifier struct {
	mu   sync.Mutex
	got  []notification.LowStockAlert
	fail bool
	sent chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan struct{}, 16)}
}

func (n *recordingNotifier) NotifyLowStock(_ context.Context, a notification.LowStockAlert) error {
	n.mu.Lock()
	n.got = append(n.got, a)
	n.mu.Unlock()
	n.sent <- struct{}{}
	if n.fail {
		return errors.New("smtp caído")
	}
	return nil
}

func (n *recordingNotifier) alerts() []notification.LowStockAlert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.LowStockAlert(nil), n.got...)
}

func waitSent(t *testing.T, n *recordingNotifier, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		select {
		case <-n.sent:
		case <-time.After(2 * time.Second):
			t.Fatalf("se esperaban %d alertas, llegaron %d", count, i)
		}
	}
}

func TestDispatcher_EntregaEnOrden(t *testing.T) {
	n := newRecordingNotifier()
	d := notification.NewDispatcher(n, 8, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	d.Dispatch(
		notification.LowStockAlert{ID: "a", ProductID: 1},
		notification.LowStockAlert{ID: "b", ProductID: 2},
	)
	waitSent(t, n, 2)

	cancel()
	require.NoError(t, <-done)

	got := n.alerts()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestDispatcher_ErrorDelNotifierNoDetieneElWorker(t *testing.T) {
	n := newRecordingNotifier()
	n.fail = true
	d := notification.NewDispatcher(n, 8, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	d.Dispatch(notification.LowStockAlert{ID: "a"})
	d.Dispatch(notification.LowStockAlert{ID: "b"})
	waitSent(t, n, 2)

	cancel()
	assert.NoError(t, <-done)
}

func TestDispatcher_ColaLlenaDescartaSinBloquear(t *testing.T) {
	n := newRecordingNotifier()
	d := notification.NewDispatcher(n, 1, logger.Nop())

	// Sin worker: la segunda alerta no cabe y se descarta sin bloquear.
	d.Dispatch(notification.LowStockAlert{ID: "a"}, notification.LowStockAlert{ID: "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(ctx))

	got := n.alerts()
	require.Len(t, got, 1, "el flush final entrega solo lo encolado")
	assert.Equal(t, "a", got[0].ID)
}

func TestOutbox_DrainVacia(t *testing.T) {
	o := notification.NewOutbox()
	o.Publish(notification.LowStockAlert{ID: "x"})
	o.Publish(notification.LowStockAlert{ID: "y"})
	assert.Equal(t, 2, o.Len())

	got := o.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].ID)
	assert.Equal(t, 0, o.Len())
	assert.Empty(t, o.Drain())
}

func TestDispatcher_RegistraEncoladoEnDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})
	d := notification.NewDispatcher(newRecordingNotifier(), 4, log)

	d.Dispatch(notification.LowStockAlert{ID: "a", ProductID: 7})

	out := buf.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"component":"notification"`)
	assert.Contains(t, out, `"alert_id":"a"`)
	assert.Contains(t, out, "alerta encolada")
}
