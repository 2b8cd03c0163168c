package email

import (
	"context"
	"time"

	"vibe-backend/internal/logger"
)

// job wraps a message with its retry count.
type job struct {
	msg     Message
	retries int
}

// Dispatcher sends emails asynchronously with bounded retries. Invitation
// issuance must never block or fail on email delivery, so callers enqueue
// and move on; terminal failures are logged.
type Dispatcher struct {
	sender     Sender
	jobs       chan job
	maxRetries int
	workers    int
}

func NewDispatcher(sender Sender, workers, queueSize, maxRetries int) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		jobs:       make(chan job, queueSize),
		maxRetries: maxRetries,
		workers:    workers,
	}
}

// Start begins processing emails asynchronously
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.worker(ctx, i)
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	logger.Debug("Email worker started", "worker", id)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Email worker stopping", "worker", id)
			return
		case j := <-d.jobs:
			d.process(j)
		}
	}
}

// Enqueue queues a message for delivery. It never blocks: when the queue
// is full the message is dropped and the drop is logged.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.jobs <- job{msg: msg}:
	default:
		logger.Error("Email queue full, dropping message", "to", msg.To, "subject", msg.Subject)
	}
}

func (d *Dispatcher) process(j job) {
	err := d.sender.Send(j.msg)
	if err == nil {
		logger.Debug("Email sent", "to", j.msg.To, "subject", j.msg.Subject)
		return
	}

	if j.retries < d.maxRetries {
		j.retries++
		backoff := time.Duration(j.retries*j.retries) * time.Second
		logger.Warn("Email send failed, retrying", "to", j.msg.To, "attempt", j.retries, "backoff", backoff, "error", err)
		time.AfterFunc(backoff, func() {
			select {
			case d.jobs <- j:
			default:
				logger.Error("Email queue full on retry, dropping message", "to", j.msg.To)
			}
		})
		return
	}

	logger.Error("Email failed after retries", "to", j.msg.To, "subject", j.msg.Subject, "retries", j.retries, "error", err)
}
