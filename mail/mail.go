// Package mail sends transactional email through SendGrid.
package mail

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/driveline/vehicle-inspection-api/config"
	templates "github.com/driveline/vehicle-inspection-api/templates/html"
)

const (
	fromName    = "Driveline Inspections"
	fromAddress = "no-reply@driveline-inspections.com"
)

// Mailer sends transactional mail to a single recipient.
type Mailer interface {
	SendOTP(toName string, toEmail string, otp string) error
}

type sendgridMailer struct {
	apiKey string
}

// New returns a Mailer backed by SendGrid.
func New(conf *config.Config) Mailer {
	return &sendgridMailer{apiKey: conf.SendgridAPIKey}
}

// SendOTP emails a one-time passcode to the recipient.
func (m *sendgridMailer) SendOTP(toName string, toEmail string, otp string) error {
	if toName == "" {
		toName = toEmail
	}
	subject := "Your Driveline verification code"
	plainText := fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in 10 minutes.", toName, otp)
	htmlContent := templates.RenderGenericEmail(subject, plainText)

	from := sgmail.NewEmail(fromName, fromAddress)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}
