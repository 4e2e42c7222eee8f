package mail

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailService struct {
	dialer *gomail.Dialer
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASSWORD")
	return &MailService{
		dialer: gomail.NewDialer(host, port, user, pass),
	}
}

// SendActivationMail mails the account activation link to a new user.
func (m *MailService) SendActivationMail(to, activationLink string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", os.Getenv("SMTP_USER"))
	message.SetHeader("To", to)
	message.SetHeader("Subject", "Activate your Fytouli account")
	message.SetBody("text/html", `
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px; background-color: #f4faf4;">
			<h2 style="color: #2e5d34; text-align: center;">Welcome to Fytouli</h2>
			<p>Hello,</p>
			<p>Thanks for signing up. Follow the link below to activate your account and start tracking your plants:</p>
			<p style="text-align: center;"><a href="`+activationLink+`" style="display: inline-block; padding: 10px 20px; background-color: #3c8c46; color: #fff; text-decoration: none; border-radius: 5px;">Activate account</a></p>
			<p>If you did not register, you can ignore this message.</p>
			<p>The Fytouli team.</p>
		</div>
	`)
	return m.dialer.DialAndSend(message)
}
