// Package notify prepares the hand-off message sent after a donation is
// created: the text the donor forwards to the admin together with the proof
// of payment, a wa.me link carrying it, and an optional broker publish so that
// other systems can pick it up. Nothing here delivers messages to people.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/rqsn/donasi/internal/document"
	"github.com/rqsn/donasi/internal/donation"
)

const proofRequest = "Mohon lampirkan file bukti pembayaran (JPG, PNG, atau PDF) dalam chat ini."

type Message struct {
	DonationID uuid.UUID       `json:"donation_id"`
	DonorName  string          `json:"donor_name"`
	Phone      string          `json:"phone"`
	Amount     int64           `json:"amount"`
	Method     donation.Method `json:"method"`
	Text       string          `json:"text"`
	Link       string          `json:"link"`
}

// Compose builds the message for d addressed to recipient, an international
// phone number without the leading plus.
func Compose(d *donation.Donation, recipient string) Message {
	text := fmt.Sprintf("Bukti Transfer Donasi\nNama: %s\nNomor Telepon: %s\nJumlah: %s\nMetode: %s\n\n %s",
		d.DonorName, d.Phone, document.Rupiah(d.Amount), d.Method.Label(), proofRequest)

	return Message{
		DonationID: d.ID,
		DonorName:  d.DonorName,
		Phone:      d.Phone,
		Amount:     d.Amount,
		Method:     d.Method,
		Text:       text,
		Link:       Link(recipient, text),
	}
}

// Link returns a wa.me deep link that opens a chat with text prefilled.
func Link(recipient, text string) string {
	recipient = strings.TrimPrefix(recipient, "+")

	return "https://wa.me/" + recipient + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Notifier composes messages for new donations and hands them to a Publisher.
type Notifier struct {
	publisher Publisher
	recipient string
}

func NewNotifier(publisher Publisher, recipient string) *Notifier {
	return &Notifier{publisher: publisher, recipient: recipient}
}

// DonationCreated returns the hand-off message for d. A failed publish is
// logged and does not affect the returned message.
func (n *Notifier) DonationCreated(ctx context.Context, d *donation.Donation) Message {
	msg := Compose(d, n.recipient)

	if err := n.publisher.Publish(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to publish donation message", "id", d.ID, "error", err)
	}

	return msg
}

// LogPublisher only logs. It is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "donation message ready", "id", msg.DonationID, "link", msg.Link)
	return nil
}
