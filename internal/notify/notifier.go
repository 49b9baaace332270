package notify

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

// Notifier tells users about appointment events. Implementations must not
// block or fail the request that triggered them.
type Notifier interface {
	AppointmentRequested(provider *models.User, ap *models.Appointment)
	AppointmentStatusChanged(ap *models.Appointment, from string)
}

type message struct {
	userID uint
	phone  string
	text   string
}

// SMSStub pretends to send SMS messages by logging them from a background
// worker. Full queues drop messages.
type SMSStub struct {
	queue chan message

	closeOnce sync.Once
	done      chan struct{}
}

func NewSMSStub() *SMSStub {
	n := &SMSStub{
		queue: make(chan message, 100),
		done:  make(chan struct{}),
	}

	go n.worker()
	return n
}

func (n *SMSStub) AppointmentRequested(provider *models.User, ap *models.Appointment) {
	var phone string
	if provider.Phone != nil {
		phone = *provider.Phone
	}

	n.enqueue(message{
		userID: provider.ID,
		phone:  phone,
		text:   fmt.Sprintf("Yeni randevu talebi: %s %s. Onayınız bekleniyor.", ap.DateString(), ap.Time),
	})
}

func (n *SMSStub) AppointmentStatusChanged(ap *models.Appointment, from string) {
	n.enqueue(message{
		userID: ap.CustomerID,
		text: fmt.Sprintf("%s %s randevunuz %s -> %s olarak güncellendi.",
			ap.DateString(), ap.Time, from, ap.Status),
	})
}

func (n *SMSStub) worker() {
	defer close(n.done)

	for msg := range n.queue {
		log.Info().
			Uint("user_id", msg.userID).
			Str("phone", msg.phone).
			Str("text", msg.text).
			Msg("simulated sms sent")
	}
}

func (n *SMSStub) enqueue(msg message) {
	select {
	case n.queue <- msg:
	default:
		log.Warn().Uint("user_id", msg.userID).Msg("notification queue full, dropping message")
	}
}

// Close flushes queued messages. No notifications may be sent afterwards.
func (n *SMSStub) Close() {
	n.closeOnce.Do(func() {
		close(n.queue)
	})
	<-n.done
}
