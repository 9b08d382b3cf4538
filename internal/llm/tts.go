/**
* Name: 			tts.go
* Description: 		Google TTS 연결 및 리포트 음성 변환
* Workflow: 		TTS 클라이언트 생성, 리포트 텍스트 정리, MP3 오디오 수신
 */

package llm

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
	"go.uber.org/zap"

	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/locale"
	"AJY_Stylist/internal/metrics"
)

// SynthesizeSpeech 입력 최대 크기 (bytes)
const maxTTSInputBytes = 5000

var ErrTTSNotConfigured = errors.New("GOOGLE_APPLICATION_CREDENTIALS not set")

var (
	mdHeading  = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	mdEmphasis = regexp.MustCompile(`\*{1,2}([^*]*)\*{1,2}`)
	mdListItem = regexp.MustCompile(`(?m)^\s*[-*]\s+`)
)

// TTS 연결 정보
type TTSClient struct {
	client  *texttospeech.Client
	voiceKo string
	voiceEn string
	logger  *zap.Logger
}

// TTS 클라이언트 초기화
func NewTTSClient(ctx context.Context, cfg config.TTSConfig, logger *zap.Logger) (*TTSClient, error) {
	if cfg.CredentialsFile == "" {
		return nil, ErrTTSNotConfigured
	}
	client, err := texttospeech.NewClient(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, errors.New("NewTTSClient(): failed to create TTS client: " + err.Error())
	}
	return &TTSClient{
		client:  client,
		voiceKo: cfg.VoiceKo,
		voiceEn: cfg.VoiceEn,
		logger:  logger,
	}, nil
}

// Synthesize 리포트를 MP3 오디오로 변환
func (t *TTSClient) Synthesize(ctx context.Context, report string, l locale.Locale) ([]byte, error) {
	languageCode, voice := "ko-KR", t.voiceKo
	if l == locale.English {
		languageCode, voice = "en-US", t.voiceEn
	}

	text := NarrationText(report)
	t.logger.Info("Synthesize(): converting report to audio",
		zap.String("language", languageCode), zap.Int("bytes", len(text)))

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := t.client.SynthesizeSpeech(ctx, req)
	metrics.ObserveUpstream("google_tts", "synthesize", err)
	if err != nil {
		t.logger.Error("Synthesize(): SynthesizeSpeech failed", zap.Error(err))
		return nil, err
	}

	t.logger.Info("Synthesize(): SynthesizeSpeech succeeded", zap.Int("audio_bytes", len(resp.AudioContent)))
	return resp.AudioContent, nil
}

// TTS 클라이언트 종료
func (t *TTSClient) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// NarrationText 마크다운 기호를 제거하고 TTS 입력 한도에 맞게 자름
func NarrationText(report string) string {
	text := mdHeading.ReplaceAllString(report, "")
	text = mdEmphasis.ReplaceAllString(text, "$1")
	text = mdListItem.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if len(text) <= maxTTSInputBytes {
		return text
	}
	cut := maxTTSInputBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
