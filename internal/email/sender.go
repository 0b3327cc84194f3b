package email

import (
	"fmt"

	"careerlift_backend/internal/config"
	"careerlift_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Sender отправляет уведомления маркетплейса через SMTP.
// Отправка никогда не влияет на исход вызвавшей операции.
type Sender struct {
	cfg *config.Config
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) send(to, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Email.FromEmail, s.cfg.Email.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		s.cfg.Email.SMTPHost,
		s.cfg.Email.SMTPPort,
		s.cfg.Email.SMTPUsername,
		s.cfg.Email.SMTPPassword,
	)

	if err := d.DialAndSend(m); err != nil {
		logger.Error("failed to send email", "to", to, "subject", subject, "error", err)
	}
}

// BidAccepted уведомляет коуча о принятой ставке.
func (s *Sender) BidAccepted(coachEmail, taskID string, price float64) {
	s.send(coachEmail,
		"Your bid was accepted",
		fmt.Sprintf("<p>Your bid of $%.2f on task %s has been accepted. You can start working now.</p>", price, taskID),
	)
}

// EscrowReleased уведомляет коуча о выплате.
func (s *Sender) EscrowReleased(coachEmail, taskID string, amount float64) {
	s.send(coachEmail,
		"Payment released",
		fmt.Sprintf("<p>Payment of $%.2f for task %s has been released to you.</p>", amount, taskID),
	)
}
