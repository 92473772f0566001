package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	from := mail.NewEmail(config.AppConfig.EmailName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)

	// Debug Logs
	fmt.Printf("--- Sending Email ---\nTo: %s\nSubject: %s\n", toEmail, subject)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email: %d %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3949AB; margin: 20px 0; }
			.cred { font-family: monospace; font-size: 16px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 %s. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, config.AppConfig.EmailName, title, bodyContent, config.AppConfig.EmailName)
}

// --- Triggers ---

// 1. Enrollment request received
func SendRequestReceivedEmail(email, name, courseName string) {
	if email == "" {
		return
	}
	subject := "Enrollment Request Received: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your enrollment request for <strong>%s</strong>.</p>
		<div class="info-box">
			Your payment receipt is under review. You will receive your login
			credentials by email once an administrator verifies the payment.
		</div>
	`, name, courseName)

	go SendEmail(email, name, subject, getEmailTemplate("Request Received", body))
}

// 2. Credentials issued after request verification
func SendCredentialsEmail(email, name, courseName, password string) {
	subject := "Your Course Access: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your enrollment in <strong>%s</strong> has been approved. Your account is ready.</p>
		<div class="info-box">
			<strong>Login:</strong> <span class="cred">%s</span><br>
			<strong>Password:</strong> <span class="cred">%s</span>
		</div>
		<p>Please change your password after your first login.</p>
	`, name, courseName, email, password)

	go SendEmail(email, name, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 3. Enrollment request rejected
func SendRequestRejectedEmail(email, name, courseName, reason string) {
	if email == "" {
		return
	}
	subject := "Enrollment Request Update: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately, your enrollment request for <strong>%s</strong> could not be verified.</p>
		<div style="color: #C62828; font-weight: bold;">Reason: %s</div>
		<p>If you believe this is a mistake, please contact support with your transaction details.</p>
	`, name, courseName, reason)

	go SendEmail(email, name, subject, getEmailTemplate("Request Rejected", body))
}

// 4. Certificate issued
func SendCertificateEmail(email, name, courseName, certificateNumber string) {
	subject := "Course Completion Certificate: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<div class="info-box" style="text-align: center;">
			<p style="margin-bottom: 10px;">Your Certificate Number:</p>
			<h2 style="margin: 0;" class="cred">%s</h2>
		</div>
		<p>You can use this certificate number for verification purposes.</p>
	`, name, courseName, certificateNumber)

	go SendEmail(email, name, subject, getEmailTemplate("Certificate of Completion", body))
}

// 5. Instructor account provisioned by admin
func SendInstructorWelcomeEmail(email, name, password string) {
	subject := "Your Instructor Account Is Ready"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>An administrator has created an instructor account for you.</p>
		<div class="info-box">
			<strong>Login:</strong> <span class="cred">%s</span><br>
			<strong>Password:</strong> <span class="cred">%s</span>
		</div>
		<p>Please change your password after your first login.</p>
	`, name, email, password)

	go SendEmail(email, name, subject, getEmailTemplate("Welcome Aboard!", body))
}

// 6. Password reset by admin
func SendPasswordResetEmail(email, name, password string) {
	subject := "Your Password Has Been Reset"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>An administrator has reset your account password.</p>
		<div class="info-box">
			<strong>New Password:</strong> <span class="cred">%s</span>
		</div>
		<p>Please change it after your next login.</p>
	`, name, password)

	go SendEmail(email, name, subject, getEmailTemplate("Password Reset", body))
}
