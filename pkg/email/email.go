package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendLoginLinkEmail sends a one-time sign-in link to the given address.
// The raw token travels only inside this link.
func (s *EmailService) SendLoginLinkEmail(toEmail, token string) error {
	loginURL := fmt.Sprintf("%s/auth/verify?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.renderLoginLinkEmail(toEmail, loginURL)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Your sign-in link"
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderLoginLinkEmail renders the sign-in link email template
func (s *EmailService) renderLoginLinkEmail(email, loginURL string) (string, error) {
	tmpl, err := template.New("login_link").Parse(loginLinkTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Email    string
		LoginURL string
		AppName  string
	}{
		Email:    email,
		LoginURL: loginURL,
		AppName:  "Invoicer",
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// loginLinkTemplate is the HTML template for sign-in link emails
const loginLinkTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Sign in to {{.AppName}}</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f6f8;font-family:Arial,Helvetica,sans-serif;">
    <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
        <tr>
            <td align="center" style="padding:32px 16px;">
                <table role="presentation" width="480" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;padding:32px;">
                    <tr>
                        <td>
                            <h2 style="margin:0 0 16px 0;color:#1e40af;">Sign in to {{.AppName}}</h2>
                            <p style="margin:0 0 16px 0;color:#374151;">
                                A sign-in link was requested for <strong>{{.Email}}</strong>.
                                Click the button below to sign in. The link works once and
                                expires in 15 minutes.
                            </p>
                            <p style="margin:0 0 24px 0;">
                                <a href="{{.LoginURL}}"
                                   style="display:inline-block;background:#1e40af;color:#ffffff;text-decoration:none;padding:12px 24px;border-radius:6px;font-weight:bold;">
                                    Sign In
                                </a>
                            </p>
                            <p style="margin:0;color:#9ca3af;font-size:12px;">
                                If you did not request this link, you can safely ignore this email.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
