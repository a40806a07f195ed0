package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/driveline/vehicle-inspection-api/api/handlers"
	mailmocks "github.com/driveline/vehicle-inspection-api/mail/mocks"
)

func TestMail_SendOTPHandlerSuccess(t *testing.T) {
	mailer := &mailmocks.Mailer{}
	mailer.On("SendOTP", "Ravi", "ravi@example.com", "482910").Return(nil)
	h := handlers.Mail{Mailer: mailer}

	body := []byte(`{"name":"Ravi","email":"ravi@example.com","otp":"482910"}`)
	req := httptest.NewRequest("POST", "/api/v1/email/send-otp", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.SendOTPHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "OTP email sent successfully")
}

func TestMail_SendOTPHandlerRequiresEmailAndOTP(t *testing.T) {
	mailer := &mailmocks.Mailer{}
	h := handlers.Mail{Mailer: mailer}

	body := []byte(`{"email":"ravi@example.com"}`)
	req := httptest.NewRequest("POST", "/api/v1/email/send-otp", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.SendOTPHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mailer.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything, mock.Anything)
}

func TestMail_SendOTPHandlerProviderFailure(t *testing.T) {
	mailer := &mailmocks.Mailer{}
	mailer.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("sendgrid status 503"))
	h := handlers.Mail{Mailer: mailer}

	body := []byte(`{"email":"ravi@example.com","otp":"482910"}`)
	req := httptest.NewRequest("POST", "/api/v1/email/send-otp", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.SendOTPHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
