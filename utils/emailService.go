package utils

import (
	"fmt"
	"log"

	"github.com/dibyajyoti0750/Ascend-LMS/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a transactional HTML email through SendGrid.
func SendEmail(toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("SENDGRID_API_KEY not set, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("Ascend", config.AppConfig.SenderEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("SendGrid error %d: %s", response.StatusCode, response.Body)
		return fmt.Errorf("failed to send email, code: %d", response.StatusCode)
	}

	return nil
}

// SendContactEmail relays a contact-form message to the site inbox.
func SendContactEmail(name, replyTo, message string) error {
	body := fmt.Sprintf(`
	<h3>New Message</h3>
	<p><strong>Name:</strong> %s</p>
	<p><strong>Email:</strong> %s</p>
	<p><strong>Message:</strong> %s</p>`, name, replyTo, message)

	return SendEmail(config.AppConfig.SenderEmail, "[Ascend] New Contact Message", body)
}

// SendEnrollmentEmail confirms a paid enrollment to the student.
func SendEnrollmentEmail(toEmail, userName, courseTitle string) error {
	body := getEmailTemplate("Enrollment Confirmed", fmt.Sprintf(`
	<p>Hi %s,</p>
	<p>Your payment was received and you are now enrolled in
	<strong>%s</strong>. Head over to My Enrollments to start learning.</p>`,
		userName, courseTitle))

	return SendEmail(toEmail, "You're enrolled! 🎉", body)
}

// getEmailTemplate wraps body content in the standard Ascend layout.
func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E2A5A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E2A5A; line-height: 1.6; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
