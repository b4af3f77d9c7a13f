package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"sync"

	"gopkg.in/gomail.v2"

	"github.com/princeprakhar/partnerhub/internal/config"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

// Sent is a message as rendered on the wire.
type Sent struct {
	To      string
	Subject string
	Raw     []byte
}

// EmailService renders messages with gomail. With an SMTP host configured it
// delivers them; otherwise they are only kept in the outbox.
type EmailService struct {
	config *config.SandboxConfig

	mu     sync.Mutex
	outbox []Sent
}

func NewEmailService(cfg *config.SandboxConfig) *EmailService {
	return &EmailService{config: cfg}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	var raw bytes.Buffer
	if _, err := m.WriteTo(&raw); err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}
	s.mu.Lock()
	s.outbox = append(s.outbox, Sent{To: to, Subject: subject, Raw: raw.Bytes()})
	s.mu.Unlock()

	if s.config.SMTPHost == "" {
		logger.Info("Email to " + to + " kept in outbox: " + subject)
		return nil
	}

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	d.TLSConfig = &tls.Config{ServerName: s.config.SMTPHost}
	return d.DialAndSend(m)
}

func (s *EmailService) SendPasswordResetEmail(email, resetLink string) error {
	subject := "[PartnerHub] 비밀번호 재설정 안내"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; line-height: 1.6; color: #333;">
    <h2>비밀번호 재설정</h2>
    <p><strong>%s</strong> 계정의 비밀번호 재설정 요청을 받았습니다.</p>
    <p>아래 링크를 눌러 새 비밀번호를 설정해주세요. 링크는 1시간 동안 유효합니다.</p>
    <p><a href="%s">비밀번호 재설정하기</a></p>
    <p style="word-break: break-all;">%s</p>
    <p>요청하지 않으셨다면 이 메일을 무시하셔도 됩니다.</p>
</body>
</html>`, email, resetLink, resetLink)

	return s.SendEmail(email, subject, body)
}

// Outbox returns every message rendered so far, oldest first.
func (s *EmailService) Outbox() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sent(nil), s.outbox...)
}
