/**
* Name: 			locale.go
* Description: 		응답/이메일 언어 처리 (en, ko)
 */

package locale

import "strings"

type Locale string

const (
	English Locale = "en"
	Korean  Locale = "ko"
)

// Parse "en"만 영어로 취급, 나머지는 모두 한국어
func Parse(raw string) Locale {
	if raw == string(English) {
		return English
	}
	return Korean
}

// FromAcceptLanguage 요청 본문에 locale이 없는 경우 (rate limit 응답 등) 헤더 기준 판단
func FromAcceptLanguage(header string) Locale {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(header)), "en") {
		return English
	}
	return Korean
}

// 사용자에게 반환되는 에러 메시지 모음
type Messages struct {
	MissingFields         string
	NoAPIKey              string
	AnalysisFailed        string
	AnalysisTimeout       string
	ReportFailed          string
	ServerError           string
	InvalidRequest        string
	CheckoutNotConfigured string
	CheckoutFailed        string
	EmailMissingFields    string
	InvalidEmail          string
	EmailNotConfigured    string
	EmailFailed           string
	AudioNotConfigured    string
	AudioFailed           string
	RateLimited           string
}

var english = Messages{
	MissingFields:         "Please fill in all fields.",
	NoAPIKey:              "API key is not configured.",
	AnalysisFailed:        "An error occurred during AI analysis. Please try again later.",
	AnalysisTimeout:       "AI analysis took too long. Please try again later.",
	ReportFailed:          "Failed to generate the report.",
	ServerError:           "A server error occurred.",
	InvalidRequest:        "Invalid request.",
	CheckoutNotConfigured: "Payment is not configured.",
	CheckoutFailed:        "Failed to create payment session.",
	EmailMissingFields:    "Missing required fields",
	InvalidEmail:          "Invalid email address",
	EmailNotConfigured:    "Email service not configured",
	EmailFailed:           "Failed to send email",
	AudioNotConfigured:    "Audio narration is not configured.",
	AudioFailed:           "Failed to create audio narration.",
	RateLimited:           "Too many requests. Please try again later.",
}

var korean = Messages{
	MissingFields:         "모든 필드를 입력해주세요.",
	NoAPIKey:              "API 키가 설정되지 않았습니다.",
	AnalysisFailed:        "AI 분석 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.",
	AnalysisTimeout:       "AI 분석 시간이 초과되었습니다. 잠시 후 다시 시도해주세요.",
	ReportFailed:          "보고서 생성에 실패했습니다.",
	ServerError:           "서버 오류가 발생했습니다.",
	InvalidRequest:        "잘못된 요청입니다.",
	CheckoutNotConfigured: "결제 설정이 완료되지 않았습니다.",
	CheckoutFailed:        "결제 세션 생성에 실패했습니다.",
	EmailMissingFields:    "필수 항목이 누락되었습니다.",
	InvalidEmail:          "올바르지 않은 이메일 주소입니다.",
	EmailNotConfigured:    "이메일 서비스가 설정되지 않았습니다.",
	EmailFailed:           "이메일 전송에 실패했습니다.",
	AudioNotConfigured:    "음성 리포트 기능이 설정되지 않았습니다.",
	AudioFailed:           "음성 리포트 생성에 실패했습니다.",
	RateLimited:           "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
}

func MessagesFor(l Locale) Messages {
	if l == English {
		return english
	}
	return korean
}
