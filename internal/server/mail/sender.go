// Package mail delivers transactional email. The server only sends password
// reset links.
package mail

import "context"

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}
