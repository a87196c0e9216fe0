package broadcast

import (
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"lead-capture-go/pkg/model"
)

// ErrNoRecipients means the resolved recipient set was empty
var ErrNoRecipients = errors.New("no recipients")

// MessageSender is the messaging capability consumed by the dispatcher.
// A non-nil error counts a recipient as not-sent; it never aborts the run.
type MessageSender interface {
	SendMessage(chatID int64, text string) error
}

// Dispatcher fans a message out to a recipient set, tallies successes and
// records exactly one log entry per call
type Dispatcher struct {
	primary *sqlx.DB
	log     *Log
	sender  MessageSender
}

// NewDispatcher creates a broadcast dispatcher
func NewDispatcher(primary *sqlx.DB, logRepo *Log, sender MessageSender) *Dispatcher {
	return &Dispatcher{primary: primary, log: logRepo, sender: sender}
}

// Broadcast sends message to targetIDs, or to every known subscriber when
// targetIDs is empty. Partial failure is expected: the result reports how
// many sends succeeded out of the resolved recipient set, and the log entry
// always lists the full set.
func (d *Dispatcher) Broadcast(message string, targetIDs []int64) (*model.BroadcastResult, error) {
	recipients := targetIDs
	recipientType := model.RecipientSpecific

	if len(recipients) == 0 {
		ids, err := d.subscriberIDs()
		if err != nil {
			return nil, err
		}
		recipients = ids
		recipientType = model.RecipientAll
	}

	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	sent := 0
	for _, id := range recipients {
		if err := d.sender.SendMessage(id, message); err != nil {
			log.Printf("broadcast: send to %d failed: %v", id, err)
			continue
		}
		sent++
	}

	// The log write is best-effort: the sends already happened and the two
	// stores are never transacted together.
	if err := d.log.Append(message, recipientType, recipients); err != nil {
		log.Printf("broadcast: %v", err)
	}

	return &model.BroadcastResult{SentCount: sent, Recipients: len(recipients)}, nil
}

func (d *Dispatcher) subscriberIDs() ([]int64, error) {
	var ids []int64
	if err := d.primary.Select(&ids, `SELECT user_id FROM subscribers`); err != nil {
		return nil, fmt.Errorf("resolving subscriber recipients: %w", err)
	}
	return ids, nil
}
