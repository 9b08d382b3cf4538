package mailer

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// 적용 순서가 결과에 영향을 주므로 순서 유지 (### -> ## -> #, ** -> *)
var markdownRules = []rule{
	{regexp.MustCompile(`### (.*)`), `<h3 style="color:#c9b99a;font-size:1rem;margin:1.2em 0 0.4em;">${1}</h3>`},
	{regexp.MustCompile(`## (.*)`), `<h2 style="color:#e8d5b7;font-size:1.15rem;margin:1.4em 0 0.5em;">${1}</h2>`},
	{regexp.MustCompile(`# (.*)`), `<h1 style="color:#f5ede0;font-size:1.3rem;margin:1.6em 0 0.6em;">${1}</h1>`},
	{regexp.MustCompile(`\*\*(.*?)\*\*`), `<strong style="color:#e8d5b7;">${1}</strong>`},
	{regexp.MustCompile(`\*(.*?)\*`), `<em>${1}</em>`},
	{regexp.MustCompile(`(?m)^- (.*)`), `<li style="margin:0.25em 0;">${1}</li>`},
	{regexp.MustCompile(`(?s)(<li.*</li>)`), `<ul style="padding-left:1.5em;margin:0.5em 0;">${1}</ul>`},
	{regexp.MustCompile(`\n\n`), `</p><p style="margin:0.75em 0;">`},
	{regexp.MustCompile(`\n`), `<br/>`},
}

var strict = bluemonday.StrictPolicy()

// RenderMarkdown LLM 리포트(마크다운)를 이메일용 인라인 스타일 HTML로 변환
// 리포트에 포함된 HTML은 먼저 제거
func RenderMarkdown(text string) string {
	out := strict.Sanitize(text)
	for _, r := range markdownRules {
		out = r.re.ReplaceAllString(out, r.repl)
	}
	return out
}
