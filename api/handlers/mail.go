package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/driveline/vehicle-inspection-api/config"
	"github.com/driveline/vehicle-inspection-api/mail"
)

// Mail exported for testing purposes
type Mail struct {
	Mailer mail.Mailer
}

type sendOTPRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SendOTPHandler emails a one-time passcode to the given address
func (m Mail) SendOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Email == "" || req.OTP == "" {
		config.ErrorStatus("failed to validate request", http.StatusBadRequest, w,
			fmt.Errorf("email and otp are required"))
		return
	}

	if err := m.Mailer.SendOTP(req.Name, req.Email, req.OTP); err != nil {
		config.ErrorStatus("failed to send email", http.StatusBadGateway, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "OTP email sent successfully",
	})
}
