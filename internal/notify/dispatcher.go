// Package notify turns inscription events into welcome mails.
//
// Publishing never blocks the caller and a failed delivery is logged, not
// retried. A full queue drops the event.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fssotc/website/internal/lifecycle"
	"github.com/fssotc/website/pkg/mailer"
)

// Publisher accepts inscription events.
type Publisher interface {
	Publish(evt lifecycle.InscriptionCreated)
}

// Dispatcher queues events and delivers them from a single worker.
type Dispatcher struct {
	sender mailer.Sender
	logger *zap.Logger
	queue  chan lifecycle.InscriptionCreated

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher creates a dispatcher with a queue of size.
func NewDispatcher(sender mailer.Sender, size int, logger *zap.Logger) *Dispatcher {
	if size <= 0 {
		size = 64
	}
	return &Dispatcher{
		sender: sender,
		logger: logger,
		queue:  make(chan lifecycle.InscriptionCreated, size),
		done:   make(chan struct{}),
	}
}

// Publish enqueues evt without blocking.
func (d *Dispatcher) Publish(evt lifecycle.InscriptionCreated) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("dispatcher closed, notification dropped",
			zap.String("inscription_id", evt.InscriptionID))
		return
	}

	select {
	case d.queue <- evt:
	default:
		d.logger.Warn("notification queue full, notification dropped",
			zap.String("inscription_id", evt.InscriptionID),
			zap.String("to", evt.Recipient))
	}
}

// Run delivers queued events until ctx is cancelled or Close drains the queue.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.done)
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-d.queue:
			if !ok {
				return
			}
			d.deliver(ctx, evt)
		}
	}
}

// Close stops accepting events and waits for Run to drain the queue.
// Run must have been started.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) deliver(ctx context.Context, evt lifecycle.InscriptionCreated) {
	err := d.sender.Send(ctx, mailer.Message{
		To:      evt.Recipient,
		Subject: evt.Subject,
		Body:    evt.Body,
	})
	if err != nil {
		d.logger.Error("send welcome mail failed",
			zap.String("inscription_id", evt.InscriptionID),
			zap.String("to", evt.Recipient),
			zap.Error(err))
		return
	}
	d.logger.Info("welcome mail sent",
		zap.String("inscription_id", evt.InscriptionID),
		zap.String("session", evt.Session.Label()))
}
