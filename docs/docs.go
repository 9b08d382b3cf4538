// Package docs swagger 문서 등록 (/swagger/*any)
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/analyze": {
            "post": {
                "description": "사진과 체형 정보로 AI 스타일 리포트와 스타일 이미지를 생성합니다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analyze"],
                "summary": "스타일 분석",
                "parameters": [
                    {
                        "description": "분석 요청",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.AnalyzeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AnalyzeResponse"}},
                    "400": {"description": "필수 입력 누락", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "API 키 미설정 또는 빈 리포트", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "OpenAI 오류", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "504": {"description": "시간 초과", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/cancel-subscription": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Subscription"],
                "summary": "구독 해지",
                "parameters": [
                    {
                        "description": "해지할 계정 이메일",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.EmailRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SuccessResponse"}},
                    "400": {"description": "이메일 누락", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "고객 또는 활성 구독 없음", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Polar API 오류", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "결제 미설정", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/checkout": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Payment"],
                "summary": "결제 세션 생성",
                "parameters": [
                    {
                        "description": "체크아웃 요청",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.CheckoutRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CheckoutResponse"}},
                    "500": {"description": "결제 미설정", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Polar API 오류", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/generate-image": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analyze"],
                "summary": "스타일 이미지 단독 생성",
                "parameters": [
                    {
                        "description": "사진 (data URL)",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.GenerateImageRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "image: data URL 또는 이미지 URL", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "사진 누락", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "API 키 미설정", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "분석 이력 조회",
                "parameters": [
                    {"type": "integer", "description": "최대 개수 (기본 20, 최대 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HistoryResponse"}},
                    "401": {"description": "인증 실패", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/history/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "분석 이력 상세",
                "parameters": [
                    {"type": "string", "description": "분석 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Analysis"}},
                    "404": {"description": "기록 없음", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/report-audio": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["audio/mpeg"],
                "tags": ["Analyze"],
                "summary": "리포트 음성 변환",
                "parameters": [
                    {
                        "description": "리포트 및 언어",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ReportAudioRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "MP3 오디오", "schema": {"type": "file"}},
                    "502": {"description": "TTS 오류", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "TTS 미설정", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/send-email": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Email"],
                "summary": "리포트 이메일 재발송",
                "parameters": [
                    {
                        "description": "이메일 요청",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.SendEmailRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SuccessResponse"}},
                    "400": {"description": "필수 입력 누락 또는 잘못된 이메일", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "이메일 서비스 미설정", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Resend 오류", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/subscription": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Subscription"],
                "summary": "구독 상태 조회",
                "parameters": [
                    {"type": "string", "description": "조회할 이메일 (토큰 사용 시 생략 가능)", "name": "email", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SubscriptionResponse"}},
                    "400": {"description": "이메일 누락", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "토큰 이메일 불일치", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "헬스 체크",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "빌드 정보",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.VersionInfo"}}
                }
            }
        },
        "/ws/analyze": {
            "get": {
                "description": "/api/analyze 의 WebSocket 버전입니다. 진행 단계를 실시간으로 받을 수 있습니다.",
                "tags": ["WebSocket (Analyze)"],
                "summary": "분석 WebSocket 연결",
                "parameters": [
                    {"type": "string", "description": "Supabase 액세스 토큰", "name": "token", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "101 Switching Protocols", "schema": {"type": "string"}},
                    "401": {"description": "유효하지 않은 토큰", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.HistoryResponse": {
            "type": "object",
            "properties": {
                "history": {"type": "array", "items": {"$ref": "#/definitions/models.Analysis"}}
            }
        },
        "handler.VersionInfo": {
            "type": "object",
            "properties": {
                "buildTime": {"type": "string", "example": "2026-01-01T00:00:00Z"},
                "commit": {"type": "string", "example": "a1b2c3d"},
                "version": {"type": "string", "example": "1.0.0"}
            }
        },
        "models.Analysis": {
            "type": "object",
            "properties": {
                "checkout_id": {"type": "string"},
                "created_at": {"type": "string"},
                "error": {"type": "string"},
                "gender": {"type": "string"},
                "has_style_image": {"type": "boolean"},
                "height": {"type": "string"},
                "id": {"type": "string"},
                "locale": {"type": "string"},
                "refunded": {"type": "boolean"},
                "report": {"type": "string"},
                "status": {"type": "string"},
                "weight": {"type": "string"}
            }
        },
        "models.AnalyzeRequest": {
            "type": "object",
            "properties": {
                "checkout_id": {"type": "string"},
                "gender": {"type": "string"},
                "height": {"type": "string"},
                "locale": {"type": "string"},
                "photo": {"type": "string"},
                "user_email": {"type": "string"},
                "weight": {"type": "string"}
            }
        },
        "models.AnalyzeResponse": {
            "type": "object",
            "properties": {
                "report": {"type": "string"},
                "styleImage": {"type": "string"}
            }
        },
        "models.CheckoutRequest": {
            "type": "object",
            "properties": {
                "embed_origin": {"type": "string"},
                "locale": {"type": "string"}
            }
        },
        "models.CheckoutResponse": {
            "type": "object",
            "properties": {
                "client_secret": {"type": "string"},
                "id": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "models.EmailRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string"},
                "refunded": {"type": "boolean"}
            }
        },
        "models.GenerateImageRequest": {
            "type": "object",
            "properties": {
                "photo": {"type": "string"}
            }
        },
        "models.ReportAudioRequest": {
            "type": "object",
            "required": ["report"],
            "properties": {
                "locale": {"type": "string"},
                "report": {"type": "string"}
            }
        },
        "models.SendEmailRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "hairstyleImage": {"type": "string"},
                "locale": {"type": "string"},
                "report": {"type": "string"},
                "styleImage": {"type": "string"}
            }
        },
        "models.SubscriptionResponse": {
            "type": "object",
            "properties": {
                "hasActiveSubscription": {"type": "boolean"}
            }
        },
        "models.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Supabase 액세스 토큰 (Bearer {token})",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AJY Stylist API",
	Description:      "AI 패션 스타일링 리포트 API (OpenAI, Polar, Resend)",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
