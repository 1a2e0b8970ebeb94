package mail

import (
	"app/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// GomailSender はSMTP経由でメールを送る。
// リトライはしない。失敗はそのまま呼び出し元へ返す。
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewGomailSender(cfg config.Config) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

func (s *GomailSender) Send(to string, subject string, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return s.dialer.DialAndSend(m)
}
