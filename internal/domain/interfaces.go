package domain

// ClientConn is the narrow view of a network connection that sessions and
// the coordinator operate on: newline-framed text in both directions and an
// idempotent close.
type ClientConn interface {
	// SendLine writes one message followed by a newline.
	SendLine(msg string) error
	// ReadLine blocks until a full newline-terminated line arrives and
	// returns it without the trailing newline.
	ReadLine() (string, error)
	// Close shuts the connection down. Closing more than once is a no-op.
	Close() error
	// RemoteAddr identifies the peer, for logging.
	RemoteAddr() string
}

// EventPublisher fans auction lifecycle events out to observers. Publishing
// must never block auction progress.
type EventPublisher interface {
	PublishAuctionEvent(event *AuctionEvent)
}
