package notify

import (
	"context"
	"time"

	"github.com/enqinsel/seo-pulse/pkg/email"
	"github.com/enqinsel/seo-pulse/pkg/logging"
)

// MailSender delivers one plain-text message.
type MailSender interface {
	SendMail(ctx context.Context, to, subject, textBody string) error
}

// EmailNotifier delivers the finished report to a single recipient. The
// report was already printed by the caller, so delivery failures are logged
// by category and returned without aborting anything.
type EmailNotifier struct {
	sender    MailSender
	recipient string
	logger    logging.Logger
	now       func() time.Time
}

func NewEmailNotifier(sender MailSender, recipient string, logger logging.Logger) *EmailNotifier {
	return &EmailNotifier{
		sender:    sender,
		recipient: recipient,
		logger:    logger,
		now:       time.Now,
	}
}

// SendReport mails the report text. The body is stripped of invisible
// Unicode before handoff and the subject stays ASCII-safe.
func (n *EmailNotifier) SendReport(ctx context.Context, content string) error {
	n.logger.Info("Sending report email")

	body := email.SanitizeText(content)
	subject := "SEO-Pulse Performance Report - " + n.now().Format("02/01/2006")

	if err := n.sender.SendMail(ctx, n.recipient, subject, body); err != nil {
		switch email.ClassifyFailure(err) {
		case email.FailureAuth:
			n.logger.WithError(err).Error("Email authentication failed, check the sender app password")
		case email.FailureProtocol:
			n.logger.WithError(err).Error("SMTP error while sending the report")
		default:
			n.logger.WithError(err).Error("Could not deliver the report email")
		}
		return err
	}

	n.logger.WithField("recipient", n.recipient).Info("Report email sent")
	return nil
}
