package jsonfile

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mnlocal/jobhub/internal/domain/message"
	"github.com/mnlocal/jobhub/internal/observability"
)

var ErrRecipientNotFound = errors.New("recipient not found")

// RecipientChecker reports whether an email belongs to a registered user.
type RecipientChecker interface {
	EmailExists(email string) bool
}

// MessagesRepo owns the append-only message collection.
type MessagesRepo struct {
	mu       sync.Mutex
	path     string
	messages []message.Message
	users    RecipientChecker
	prom     *observability.Prom
}

func NewMessagesRepo(path string, users RecipientChecker, prom *observability.Prom) (*MessagesRepo, error) {
	messages, err := loadCollection[message.Message](path)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	return &MessagesRepo{
		path:     path,
		messages: messages,
		users:    users,
		prom:     prom,
	}, nil
}

// Append stores a message stamped with the current time. The recipient must
// be an existing user; nothing is appended otherwise.
func (r *MessagesRepo) Append(from, to, text string) (err error) {
	start := time.Now()
	defer func() { r.prom.ObserveStoreOp("messages_append", start, err) }()

	if !r.users.EmailExists(to) {
		return ErrRecipientNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, message.Message{
		From:      from,
		To:        to,
		Body:      text,
		Timestamp: time.Now().UnixMilli(),
	})

	return writeCollection(r.path, r.messages)
}

// Conversation returns every message exchanged between a and b, in either
// direction, ascending by timestamp. The sort is stable so equal timestamps
// keep insertion order.
func (r *MessagesRepo) Conversation(a, b string) []message.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]message.Message, 0)

	for _, m := range r.messages {
		if (m.From == a && m.To == b) || (m.From == b && m.To == a) {
			out = append(out, m)
		}
	}

	slices.SortStableFunc(out, func(x, y message.Message) int {
		switch {
		case x.Timestamp < y.Timestamp:
			return -1
		case x.Timestamp > y.Timestamp:
			return 1
		default:
			return 0
		}
	})

	return out
}
