package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"chalkup/config"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridMailer struct {
	key    string
	from   *sgmail.Email
	logger *zap.Logger
}

func NewSendgridMailer(cfg config.MailConfig, logger *zap.Logger) *SendgridMailer {
	return &SendgridMailer{
		key:    cfg.SendGridAPIKey,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: logger,
	}
}

func (m *SendgridMailer) Send(ctx context.Context, msg Message) error {
	to := sgmail.NewEmail(msg.ToName, msg.ToEmail)
	mail := sgmail.NewSingleEmail(m.from, msg.Subject, to, msg.Text, msg.HTML)

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(mail)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		m.logger.Error("ошибка отправки письма", zap.String("to", msg.ToEmail), zap.Error(err))
		return fmt.Errorf("ошибка отправки письма: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		m.logger.Error("sendgrid отклонил письмо",
			zap.String("to", msg.ToEmail),
			zap.Int("status", res.StatusCode),
			zap.String("body", res.Body),
		)
		return fmt.Errorf("sendgrid отклонил письмо: статус %d", res.StatusCode)
	}

	return nil
}

// NoopMailer используется в окружениях без ключа SendGrid:
// письма только логируются.
type NoopMailer struct {
	logger *zap.Logger
}

func NewNoopMailer(logger *zap.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

func (m *NoopMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("письмо не отправлено (noop mailer)",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
	)
	return nil
}
