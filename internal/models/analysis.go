package models

import "time"

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// 분석 이력 (이메일은 해시로만 저장)
type Analysis struct {
	ID            string    `json:"id"`
	EmailHash     string    `json:"-"`
	Locale        string    `json:"locale"`
	Gender        string    `json:"gender"`
	Height        string    `json:"height"`
	Weight        string    `json:"weight"`
	CheckoutID    string    `json:"checkout_id,omitempty"`
	Status        string    `json:"status"`
	Report        string    `json:"report,omitempty"`
	HasStyleImage bool      `json:"has_style_image"`
	Refunded      bool      `json:"refunded"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
