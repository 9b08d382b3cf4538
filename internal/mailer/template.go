package mailer

import (
	"bytes"
	"html/template"
	"strings"

	"AJY_Stylist/internal/locale"
)

type emailText struct {
	Title       string
	ReportLabel string
	ImageTitle  string
	Disclaimer  string
	Footer      string
}

var texts = map[locale.Locale]emailText{
	locale.Korean: {
		Title:       "AJY Stylist — 스타일 리포트",
		ReportLabel: "AI 분석 리포트",
		ImageTitle:  "AI 스타일 제안",
		Disclaimer:  "본 보고서는 AI 소프트웨어가 자동 생성한 패션 참고 자료입니다. 전문 스타일리스트의 조언을 대체하지 않습니다.",
		Footer:      "AI 패션 스타일링 by AJY Stylist",
	},
	locale.English: {
		Title:       "AJY Stylist — Style Report",
		ReportLabel: "AI Analysis Report",
		ImageTitle:  "AI Style Suggestion",
		Disclaimer:  "This report is AI-generated fashion reference material. It does not replace professional stylist advice.",
		Footer:      "AI Fashion Styling by AJY Stylist",
	},
}

// Subject 이메일 제목
func Subject(l locale.Locale) string {
	if l == locale.English {
		return "AJY Stylist — Your Personal Style Report"
	}
	return "AJY Stylist — 나만의 스타일 리포트가 도착했습니다"
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8"/>
  <meta name="viewport" content="width=device-width,initial-scale=1"/>
  <title>{{.Text.Title}}</title>
</head>
<body style="margin:0;padding:0;background:#0d0b18;font-family:'Georgia',serif;color:#c9b99a;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background:#0d0b18;padding:32px 0;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="max-width:600px;width:100%;">
          <tr>
            <td style="background:linear-gradient(135deg,#1a1530 0%,#231d3a 100%);border-radius:16px 16px 0 0;padding:32px 40px;text-align:center;border-bottom:1px solid rgba(201,185,154,0.2);">
              <p style="margin:0;font-size:1.6rem;font-weight:700;color:#e8d5b7;letter-spacing:0.08em;">
                AJY <span style="color:#c9b99a;font-weight:400;font-size:1.1rem;">Stylist</span>
              </p>
              <p style="margin:8px 0 0;font-size:0.85rem;color:#7a6f8a;letter-spacing:0.12em;text-transform:uppercase;">
                AI Fashion Styling
              </p>
            </td>
          </tr>
          <tr>
            <td style="background:#131022;padding:36px 40px;">
              <p style="margin:0 0 1em;font-size:0.8rem;letter-spacing:0.12em;text-transform:uppercase;color:#7a6f8a;">
                {{.Text.ReportLabel}}
              </p>
              <p style="margin:0 0 1.5em;color:#f5ede0;font-size:0.75em;">
                {{.Report}}
              </p>
              {{- if .Image}}
              <div style="margin-top:2em;border-top:1px solid rgba(201,185,154,0.15);padding-top:1.5em;">
                <p style="margin:0 0 1em;font-size:1rem;font-weight:600;color:#e8d5b7;">{{.Text.ImageTitle}}</p>
                <img src="{{.Image}}" alt="{{.Text.ImageTitle}}" style="width:100%;max-width:520px;border-radius:12px;display:block;margin:0 auto;"/>
              </div>
              {{- end}}
              <div style="margin-top:2em;padding:16px 20px;background:rgba(255,255,255,0.04);border-radius:8px;border-left:3px solid rgba(201,185,154,0.4);">
                <p style="margin:0;font-size:0.78rem;color:#7a6f8a;line-height:1.6;">{{.Text.Disclaimer}}</p>
              </div>
            </td>
          </tr>
          <tr>
            <td style="background:#0d0b18;border-radius:0 0 16px 16px;padding:24px 40px;text-align:center;border-top:1px solid rgba(201,185,154,0.1);">
              <p style="margin:0;font-size:0.8rem;color:#7a6f8a;">{{.Text.Footer}}</p>
              <p style="margin:8px 0 0;font-size:0.72rem;color:#4a4560;">© 2026 AJY Stylist. All rights reserved.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

// safeImageSource data:image/ 또는 https:// 이미지만 허용
func safeImageSource(src string) template.URL {
	src = strings.TrimSpace(src)
	if strings.HasPrefix(src, "data:image/") || strings.HasPrefix(src, "https://") {
		return template.URL(src)
	}
	return ""
}

// BuildEmailHTML 리포트 이메일 본문 생성
func BuildEmailHTML(report string, l locale.Locale, styleImage string) (string, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, struct {
		Lang   string
		Text   emailText
		Report template.HTML
		Image  template.URL
	}{
		Lang:   string(l),
		Text:   texts[l],
		Report: template.HTML(RenderMarkdown(report)),
		Image:  safeImageSource(styleImage),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
