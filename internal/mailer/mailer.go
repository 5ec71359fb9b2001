package mailer

import (
	"context"
)

// Message — одно письмо. Тело дублируется в text/plain и text/html.
type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}

// Mailer отправляет письма о бронировании и отмене сессий.
// Ошибки отправки не должны прерывать бизнес-операцию.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
