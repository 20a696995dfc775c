package message

// Message is one direct message between two users. Messages are append-only;
// there is no edit or delete.
type Message struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Body      string `json:"message"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds, orders conversations
}
