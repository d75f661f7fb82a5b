package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talentdesk/internal/config"
	"talentdesk/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxAttempts = 5

// Dispatcher drains the outbox on a ticker and hands each message to
// the configured senders. A send failure marks the row for retry and
// is logged; it never touches the workflow row that enqueued it.
type Dispatcher struct {
	db     *gorm.DB
	lg     *zap.SugaredLogger
	email  EmailSender
	wa     WhatsAppSender
	admins []string

	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewDispatcher(db *gorm.DB, lg *zap.SugaredLogger, cfg *config.Config) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		db:       db,
		lg:       lg,
		email:    NewSMTPSender(cfg.SMTP),
		wa:       NewWhatsAppSender(cfg.WhatsApp),
		admins:   cfg.AdminEmails,
		interval: cfg.OutboxInterval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop. The first drain runs immediately.
func (d *Dispatcher) Start() {
	go func() {
		defer close(d.done)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		d.drain()
		for {
			select {
			case <-d.ctx.Done():
				return
			case <-ticker.C:
				d.drain()
			}
		}
	}()
}

func (d *Dispatcher) Stop() {
	d.cancel()
	<-d.done
}

func (d *Dispatcher) drain() {
	var pending []models.OutboxMessage
	err := d.db.
		Where("status = ? AND attempts < ?", "pending", maxAttempts).
		Order("created_at asc").
		Limit(25).
		Find(&pending).Error
	if err != nil {
		d.lg.Errorw("outbox poll failed", "error", err)
		return
	}
	for _, msg := range pending {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg models.OutboxMessage) {
	err := d.send(msg)
	now := time.Now()
	if err == nil {
		d.db.Model(&models.OutboxMessage{}).Where("id = ?", msg.ID).
			Updates(map[string]any{"status": "sent", "sent_at": now, "attempts": msg.Attempts + 1})
		return
	}
	d.lg.Warnw("notification delivery failed",
		"outbox_id", msg.ID, "event", msg.EventType, "attempt", msg.Attempts+1, "error", err)
	updates := map[string]any{"attempts": msg.Attempts + 1, "last_error": err.Error()}
	if msg.Attempts+1 >= maxAttempts {
		updates["status"] = "failed"
	}
	d.db.Model(&models.OutboxMessage{}).Where("id = ?", msg.ID).Updates(updates)
}

func (d *Dispatcher) send(msg models.OutboxMessage) error {
	switch msg.EventType {
	case EventTicketCreatedAdmin:
		var p TicketPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		subject, body := renderTicketCreatedAdmin(p)
		return d.email.Send(d.admins, subject, body)
	case EventTicketCreatedUser:
		var p TicketPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		subject, body := renderTicketCreatedUser(p)
		return d.email.Send([]string{p.ContactEmail}, subject, body)
	case EventTicketStatusChanged:
		var p TicketPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		subject, body := renderTicketStatusChanged(p)
		if err := d.email.Send([]string{p.ContactEmail}, subject, body); err != nil {
			return err
		}
		// WhatsApp only when the submitter registered a phone number;
		// its failure is advisory once the email went out.
		if p.ContactPhone != nil && *p.ContactPhone != "" {
			if err := d.wa.Send(*p.ContactPhone, body); err != nil {
				d.lg.Warnw("whatsapp delivery failed", "ticket_id", p.TicketID, "error", err)
			}
		}
		return nil
	case EventApplicationReceived:
		var p ApplicationPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		subject, body := renderApplicationReceived(p)
		return d.email.Send([]string{p.RecruiterEmail}, subject, body)
	case EventApplicationStatusChange:
		var p ApplicationPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		subject, body := renderApplicationStatusChanged(p)
		return d.email.Send([]string{p.ApplicantEmail}, subject, body)
	default:
		return fmt.Errorf("unknown event type %q", msg.EventType)
	}
}
