package services

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/url"
	"strings"

	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/mail-svc/internal/templates"
	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/sirupsen/logrus"
)

var ErrNoRecipient = errors.New("mail: no recipient")

type Sender interface {
	Send(to string, msg []byte) error
}

type MailService struct {
	sender        Sender
	tmpl          *template.Template
	mailFrom      string
	mailFromName  string
	verifyBaseURL string
	supportInbox  string
	log           *logger.Logger
}

type MailOptions struct {
	From          string
	FromName      string
	VerifyBaseURL string
	SupportInbox  string
}

func NewMailService(sender Sender, opts MailOptions, log *logger.Logger) (*MailService, error) {
	tmpl, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &MailService{
		sender:        sender,
		tmpl:          tmpl,
		mailFrom:      opts.From,
		mailFromName:  opts.FromName,
		verifyBaseURL: opts.VerifyBaseURL,
		supportInbox:  opts.SupportInbox,
		log:           log,
	}, nil
}

func (s *MailService) SendVerifyEmail(e dto.VerifyEmailEvent) error {
	link := fmt.Sprintf("%s?token=%s", s.verifyBaseURL, url.QueryEscape(e.Token))
	return s.send(e.Email, "Verify your email", "verify-email.html", map[string]string{
		"Link": link,
	})
}

func (s *MailService) SendWelcome(e dto.WelcomeEvent) error {
	return s.send(e.Email, "Welcome to the league", "welcome.html", e)
}

func (s *MailService) SendPaymentConfirmed(e dto.PaymentConfirmedEvent) error {
	return s.send(e.Email, "Payment confirmed", "payment-confirmed.html", e)
}

// SendSupportTicket notifies the operations inbox. Tickets are dropped with
// a warning when no inbox is configured.
func (s *MailService) SendSupportTicket(e dto.SupportTicketEvent) error {
	if s.supportInbox == "" {
		s.log.WithField("ticket_id", e.TicketID).Warn("[MAIL] support inbox not configured, skipping")
		return nil
	}
	subject := fmt.Sprintf("Support ticket %s (%s)", e.TicketID, e.SupportMode)
	return s.send(s.supportInbox, subject, "support-ticket.html", e)
}

func (s *MailService) send(to, subject, tmplName string, data any) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrNoRecipient
	}

	var body bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&body, tmplName, data); err != nil {
		return fmt.Errorf("render %s: %w", tmplName, err)
	}

	msg := s.compose(to, subject, body.String())

	entry := s.log.WithFields(logrus.Fields{"to": to, "template": tmplName})
	entry.Debug("[MAIL] smtp sending")

	if err := s.sender.Send(to, msg); err != nil {
		return fmt.Errorf("send %s: %w", tmplName, err)
	}

	entry.Info("[MAIL] sent")
	return nil
}

func (s *MailService) compose(to, subject, htmlBody string) []byte {
	from := s.mailFrom
	if s.mailFromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", s.mailFromName), s.mailFrom)
	}

	return []byte(strings.Join([]string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", subject)),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n"))
}
