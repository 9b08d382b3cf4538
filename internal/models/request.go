package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Metric 키/몸무게 입력 (문자열 또는 숫자 모두 허용)
type Metric string

func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Metric(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*m = Metric(n.String())
	return nil
}

type CheckoutRequest struct {
	EmbedOrigin string `json:"embed_origin"`
	Locale      string `json:"locale"`
}

type CheckoutResponse struct {
	URL          string `json:"url"`
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type AnalyzeRequest struct {
	Photo      string `json:"photo"`
	Height     Metric `json:"height"`
	Weight     Metric `json:"weight"`
	Gender     string `json:"gender"`
	Locale     string `json:"locale"`
	CheckoutID string `json:"checkout_id"`
	UserEmail  string `json:"user_email"`
}

type AnalyzeResponse struct {
	Report     string  `json:"report"`
	StyleImage *string `json:"styleImage"`
}

type GenerateImageRequest struct {
	Photo string `json:"photo"`
}

type SendEmailRequest struct {
	Email          string `json:"email"`
	Report         string `json:"report"`
	StyleImage     string `json:"styleImage"`
	HairstyleImage string `json:"hairstyleImage"`
	Locale         string `json:"locale"`
}

// Image styleImage 우선, 구버전 클라이언트는 hairstyleImage 사용
func (r SendEmailRequest) Image() string {
	if r.StyleImage != "" {
		return r.StyleImage
	}
	return r.HairstyleImage
}

type EmailRequest struct {
	Email string `json:"email"`
}

type SubscriptionResponse struct {
	HasActiveSubscription bool `json:"hasActiveSubscription"`
}

type ReportAudioRequest struct {
	Report string `json:"report" binding:"required"`
	Locale string `json:"locale"`
}

type ErrorResponse struct {
	Error    string `json:"error"`
	Refunded *bool  `json:"refunded,omitempty"`
	Details  string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
