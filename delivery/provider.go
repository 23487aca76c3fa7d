package delivery

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jhillyerd/enmime"
)

// Sender transmits one encoded message. enmime's SMTP sender satisfies it.
type Sender interface {
	Send(reversePath string, recipients []string, msg []byte) error
}

// Result reports the outcome of one digest batch.
type Result struct {
	Sent   []string `json:"sent"`
	Failed []string `json:"failed"`
}

// ErrNoRecipients is returned when a digest is requested with nobody to send it to.
var ErrNoRecipients = errors.New("no digest recipients configured")

// DigestService sends a digest to each recipient separately so that one bad
// address does not stop the batch.
type DigestService struct {
	sender     Sender
	fromName   string
	fromEmail  string
	recipients []string
}

func NewDigestService(sender Sender, fromName, fromEmail string, recipients []string) *DigestService {
	return &DigestService{
		sender:     sender,
		fromName:   fromName,
		fromEmail:  fromEmail,
		recipients: recipients,
	}
}

// Recipients returns the configured addresses.
func (s *DigestService) Recipients() []string {
	return s.recipients
}

// Deliver sends d to every recipient. It fails only if nothing could be sent.
func (s *DigestService) Deliver(ctx context.Context, d *Digest) (*Result, error) {
	if len(s.recipients) == 0 {
		return nil, ErrNoRecipients
	}
	if s.sender == nil {
		return nil, errors.New("no mail sender configured")
	}

	result := &Result{Sent: []string{}, Failed: []string{}}
	var lastErr error
	for _, recipient := range s.recipients {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		msg := enmime.Builder().
			From(s.fromName, s.fromEmail).
			To("", recipient).
			Subject(d.Subject).
			Date(d.Date).
			Header("Message-ID", "<"+uuid.NewString()+"@newsdash>").
			Text([]byte(d.Text)).
			HTML([]byte(d.HTML))

		if err := msg.Send(s.sender); err != nil {
			log.Printf("ERROR (DigestService): Failed to send digest to %s: %v", recipient, err)
			result.Failed = append(result.Failed, recipient)
			lastErr = err
			continue
		}
		log.Printf("INFO (DigestService): Digest sent to %s", recipient)
		result.Sent = append(result.Sent, recipient)
	}

	log.Printf("INFO (DigestService): Digest batch done: sent %d, failed %d", len(result.Sent), len(result.Failed))
	if len(result.Sent) == 0 {
		return result, fmt.Errorf("digest delivery failed for all %d recipients: %w", len(result.Failed), lastErr)
	}
	if len(result.Failed) > 0 {
		log.Printf("WARN (DigestService): Undelivered recipients: %s", strings.Join(result.Failed, ", "))
	}
	return result, nil
}

// ParseRecipients splits a comma separated address list, skipping blanks and
// entries that are not addresses.
func ParseRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		addr := strings.TrimSpace(part)
		if addr == "" {
			continue
		}
		if !strings.Contains(addr, "@") {
			log.Printf("WARN (DigestService): Skipping invalid recipient address %q", addr)
			continue
		}
		out = append(out, addr)
	}
	return out
}
