package mailer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/locale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("## 체형\n**상의**: *셔츠*\n\n- 하나\n- 둘")

	assert.Contains(t, out, `<h2 style="color:#e8d5b7;font-size:1.15rem;margin:1.4em 0 0.5em;">체형</h2>`)
	assert.Contains(t, out, `<strong style="color:#e8d5b7;">상의</strong>`)
	assert.Contains(t, out, `<em>셔츠</em>`)
	assert.Contains(t, out, `<ul style="padding-left:1.5em;margin:0.5em 0;"><li style="margin:0.25em 0;">하나</li><br/><li style="margin:0.25em 0;">둘</li></ul>`)
	assert.Contains(t, out, `</p><p style="margin:0.75em 0;">`)
	assert.NotContains(t, out, "\n")
}

func TestRenderMarkdown_Headings(t *testing.T) {
	assert.Equal(t, `<h3 style="color:#c9b99a;font-size:1rem;margin:1.2em 0 0.4em;">A</h3>`, RenderMarkdown("### A"))
	assert.Equal(t, `<h1 style="color:#f5ede0;font-size:1.3rem;margin:1.6em 0 0.6em;">A</h1>`, RenderMarkdown("# A"))
}

func TestRenderMarkdown_StripsHTML(t *testing.T) {
	out := RenderMarkdown(`hello <script>alert(1)</script><img src=x onerror=alert(1)>`)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "hello")
}

func TestBuildEmailHTML(t *testing.T) {
	html, err := BuildEmailHTML("**Hi**", locale.English, "data:image/png;base64,aW1n")
	require.NoError(t, err)
	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, "AI Analysis Report")
	assert.Contains(t, html, `<strong style="color:#e8d5b7;">Hi</strong>`)
	assert.Contains(t, html, `src="data:image/png;base64,aW1n"`)
	assert.Contains(t, html, "AI Style Suggestion")
	assert.Contains(t, html, "It does not replace professional stylist advice.")

	html, err = BuildEmailHTML("리포트", locale.Korean, "https://cdn.example.com/style.png")
	require.NoError(t, err)
	assert.Contains(t, html, "AI 스타일 제안")

	html, err = BuildEmailHTML("리포트", locale.Korean, "")
	require.NoError(t, err)
	assert.Contains(t, html, "AI 분석 리포트")
	assert.NotContains(t, html, "<img")
}

func TestBuildEmailHTML_RejectsUnsafeImage(t *testing.T) {
	html, err := BuildEmailHTML("report", locale.English, "javascript:alert(1)")
	require.NoError(t, err)
	assert.NotContains(t, html, "<img")
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "AJY Stylist — Your Personal Style Report", Subject(locale.English))
	assert.Equal(t, "AJY Stylist — 나만의 스타일 리포트가 도착했습니다", Subject(locale.Korean))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.False(t, ValidEmail("user@example"))
	assert.False(t, ValidEmail("user example@x.com"))
	assert.False(t, ValidEmail("@example.com"))
}

func TestSendReport(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	client := NewClient(config.ResendConfig{APIKey: "re_test", BaseURL: srv.URL, From: "AJY Stylist <onboarding@resend.dev>"}, zap.NewNop())
	require.NoError(t, client.SendReport(t.Context(), "user@example.com", "# Report", locale.Korean, ""))

	assert.Equal(t, "AJY Stylist <onboarding@resend.dev>", got.From)
	assert.Equal(t, []string{"user@example.com"}, got.To)
	assert.Equal(t, Subject(locale.Korean), got.Subject)
	assert.True(t, strings.Contains(got.HTML, "Report</h1>"))
}

func TestSendReport_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"domain not verified"}`))
	}))
	defer srv.Close()

	client := NewClient(config.ResendConfig{APIKey: "re_test", BaseURL: srv.URL}, zap.NewNop())
	err := client.SendReport(t.Context(), "user@example.com", "report", locale.English, "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	unconfigured := NewClient(config.ResendConfig{}, zap.NewNop())
	assert.ErrorIs(t, unconfigured.SendReport(t.Context(), "user@example.com", "r", locale.English, ""), ErrNotConfigured)
}
