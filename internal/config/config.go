/**
* Name: 			config.go
* Description: 		서버 설정 로딩 (config.yaml + 환경 변수 + .env)
* Workflow: 		.env 로드 -> 기본값 설정 -> 설정 파일 읽기 -> 환경 변수 덮어쓰기
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Image     ImageConfig     `mapstructure:"image"`
	Polar     PolarConfig     `mapstructure:"polar"`
	Resend    ResendConfig    `mapstructure:"resend"`
	Analyze   AnalyzeConfig   `mapstructure:"analyze"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	TTS       TTSConfig       `mapstructure:"tts"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// X-Forwarded-For 를 신뢰할 프록시 (비어 있으면 RemoteAddr 기준)
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type OpenAIConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	TextModel string        `mapstructure:"text_model"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// 이미지 편집 API 파라미터 (images/edits multipart 필드)
type ImageConfig struct {
	Model          string `mapstructure:"model"`
	N              int    `mapstructure:"n"`
	Size           string `mapstructure:"size"`
	Quality        string `mapstructure:"quality"`
	Background     string `mapstructure:"background"`
	Moderation     string `mapstructure:"moderation"`
	InputFidelity  string `mapstructure:"input_fidelity"`
	ResponseFormat string `mapstructure:"response_format"`
}

type PolarConfig struct {
	AccessToken       string        `mapstructure:"access_token"`
	BaseURL           string        `mapstructure:"base_url"`
	ProductID         string        `mapstructure:"product_id"`
	RefundMaxAttempts int           `mapstructure:"refund_max_attempts"`
	RefundBackoff     time.Duration `mapstructure:"refund_backoff"`
	RefundTimeout     time.Duration `mapstructure:"refund_timeout"`
}

type ResendConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	From    string `mapstructure:"from"`
}

type AnalyzeConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	EmailTimeout time.Duration `mapstructure:"email_timeout"`
}

type AuthConfig struct {
	SupabaseJWTSecret string `mapstructure:"supabase_jwt_secret"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// 클라이언트 IP 단위 요청 제한 (Interval 마다 토큰 1개, 최대 Burst)
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	Burst    int           `mapstructure:"burst"`
	Expire   time.Duration `mapstructure:"expire"`
}

type TTSConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	VoiceKo         string `mapstructure:"voice_ko"`
	VoiceEn         string `mapstructure:"voice_en"`
}

// 환경 변수 이름 매핑 (Pages Functions 시절의 변수명을 그대로 사용)
var envBindings = map[string]string{
	"server.port":              "PORT",
	"server.mode":              "GIN_MODE",
	"server.trusted_proxies":   "TRUSTED_PROXIES",
	"openai.api_key":           "OPENAI_API_KEY",
	"openai.base_url":          "OPENAI_BASE_URL",
	"polar.access_token":       "POLAR_ACCESS_TOKEN",
	"polar.base_url":           "POLAR_API_URL",
	"polar.product_id":         "POLAR_PRODUCT_ID",
	"resend.api_key":           "RESEND_API_KEY",
	"resend.from":              "RESEND_FROM",
	"auth.supabase_jwt_secret": "SUPABASE_JWT_SECRET",
	"redis.addr":               "REDIS_ADDR",
	"redis.password":           "REDIS_PASSWORD",
	"database.path":            "DATABASE_PATH",
	"tts.credentials_file":     "GOOGLE_APPLICATION_CREDENTIALS",
}

// Load 설정 파일(선택)과 환경 변수로 설정을 구성
func Load(configPath string) (*Config, error) {
	// .env 파일이 없어도 무시
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if !strings.Contains(cfg.Server.Port, ":") {
		cfg.Server.Port = ":" + cfg.Server.Port
	}
	return &cfg, nil
}

// MustLoad CONFIG_PATH(기본 config.yaml) 기준으로 설정 로딩, 실패 시 종료
func MustLoad() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config %s: %v\n", path, err)
		os.Exit(1)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.text_model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", 60*time.Second)

	v.SetDefault("image.model", "gpt-image-1.5")
	v.SetDefault("image.n", 1)
	v.SetDefault("image.size", "1024x1024")
	v.SetDefault("image.quality", "auto")
	v.SetDefault("image.background", "auto")
	v.SetDefault("image.moderation", "auto")
	v.SetDefault("image.input_fidelity", "high")
	v.SetDefault("image.response_format", "b64_json")

	v.SetDefault("polar.base_url", "https://sandbox-api.polar.sh")
	v.SetDefault("polar.product_id", "147c1b35-42a4-4a5d-82a2-865f282be343")
	v.SetDefault("polar.refund_max_attempts", 4)
	v.SetDefault("polar.refund_backoff", 3*time.Second)
	v.SetDefault("polar.refund_timeout", 45*time.Second)

	v.SetDefault("resend.base_url", "https://api.resend.com")
	v.SetDefault("resend.from", "AJY Stylist <onboarding@resend.dev>")

	v.SetDefault("analyze.timeout", 28*time.Second)
	v.SetDefault("analyze.email_timeout", 30*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("database.path", "./ajy_stylist.db")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.interval", 12*time.Second)
	v.SetDefault("ratelimit.burst", 5)
	v.SetDefault("ratelimit.expire", time.Hour)

	v.SetDefault("tts.voice_ko", "ko-KR-Wavenet-A")
	v.SetDefault("tts.voice_en", "en-US-Wavenet-F")
}
