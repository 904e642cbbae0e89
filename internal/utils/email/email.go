package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/finsight/finsight-service/internal/config"
	"github.com/finsight/finsight-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendAnomalyAlert sends an email listing the flagged transactions in a
// user's latest financial bundle.
func (s *Sender) SendAnomalyAlert(to, username string, report *models.AnomalyReport) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Spending Alert: %d unusual transactions detected", report.Count)

	// Format email body
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Our review of your recent account activity flagged %d unusual debit transactions:\n\n",
		username, report.Count,
	)
	for _, a := range report.Anomalies {
		body += fmt.Sprintf(
			"  %s  %s  %.2f INR  (%s): %s\n",
			a.Date.Format("2006-01-02"), a.Bank, a.Amount, a.Description, a.Reason,
		)
	}
	body += "\nIf you recognise these transactions, no action is needed.\n"
	body += "\nBest regards,\nFinsight"
	e.Text = []byte(body)

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	err := e.Send(addr, auth)
	if err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
