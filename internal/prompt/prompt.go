/**
* Name: 			prompt.go
* Description: 		OpenAI 요청에 사용하는 프롬프트 생성
* Workflow: 		분석 프롬프트(system), 사용자 메시지, 스타일 이미지 프롬프트
 */

package prompt

import (
	"fmt"
	"strconv"

	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/locale"
)

const stylePrompt = `You are the best fashion stylist in the world.

Using the attached image, create a single composite image containing three separate vertical panels arranged in a 1×3 horizontal grid (side-by-side).

IMPORTANT STRUCTURE:
Each panel must behave like its own independent vertical 9:16 frame.
The three panels are placed next to each other inside one wide canvas.
No panel may be cropped on the left or right edges.

Left panel: Effortless Daily Styling  
Center panel: Clean Modern Styling  
Right panel: Hip / Trendy Contemporary Styling  

STRICT FRAMING RULES FOR EACH PANEL:

Full body including shoes fully visible.
Wide framing.
Vertical 9:16 composition inside each panel.

Full-length long shot from a distance.
The subject appears smaller within the panel.
The subject occupies only about 50–55% of the panel height.

Large visible empty space above the head.
Clearly visible floor extending below the shoes.

The shoes must be completely visible inside the frame.
The shoes must NOT touch the bottom edge.
The head must NOT touch the top edge.

CRITICAL:
Generous empty space must also exist on BOTH left and right sides of the subject inside each panel.
The subject must not touch or approach the side edges.

Centered subject in each panel.
Standing straight.
Plain clean studio background.
Soft natural lighting.
Balanced negative space.
High-end editorial lookbook photography.
No cropping.
No edge clipping.`

const analysisPromptEn = `You are an AI-powered fashion styling software. Analyze the user's photo and body information to automatically generate a personalized fashion style report.

User Information:
- Gender: %s
- Height: %scm
- Weight: %skg

Please write a detailed fashion style report covering the following:

1. **Body Type Analysis**: Analyze the fashion-relevant body type based on the photo and provided information.
2. **Personal Color Recommendation**: Recommend clothing colors that suit the user based on visible skin tone in the photo.
3. **Style Recommendations**: Suggest specific clothing styles that match the body type and vibe (tops, bottoms, outerwear, accessories).
4. **Styles to Avoid**: Identify styles that may not flatter the body type.
5. **Outfit Suggestions**: Propose 3 specific outfit combinations (casual, semi-formal, formal).
6. **Shopping Tips**: Provide size and fit tips for purchasing clothes.

Important Guidelines:
- This report must focus purely on fashion and clothing styling.
- NEVER include health, diet, weight loss, exercise, or medical advice.
- Do NOT negatively judge body shape or suggest weight changes.
- End the report with: "This report is AI-generated fashion reference material and does not replace professional stylist advice."

Write the report in a friendly yet professional tone using markdown format.`

const analysisPromptKo = `당신은 AI 기반 패션 스타일링 소프트웨어입니다. 사용자의 사진과 체형 정보를 분석하여 맞춤 패션 스타일 보고서를 자동 생성해주세요.

사용자 정보:
- 성별: %s
- 키: %scm
- 몸무게: %skg

다음 항목들을 포함한 상세한 패션 스타일 보고서를 작성해주세요:

1. **체형 분석**: 사진과 제공된 정보를 바탕으로 패션 관점에서의 체형 타입을 분석해주세요
2. **퍼스널 컬러 추천**: 사진에서 보이는 피부톤을 기반으로 어울리는 의류 컬러를 추천해주세요.
3. **스타일 추천**: 체형과 분위기에 맞는 옷 스타일을 구체적으로 추천해주세요 (상의, 하의, 아우터, 액세서리 포함).
4. **피해야 할 스타일**: 체형에 맞지 않아 피하면 좋을 스타일을 알려주세요.
5. **코디 제안**: 3가지 구체적인 코디 조합을 제안해주세요 (캐주얼, 세미포멀, 포멀).
6. **쇼핑 팁**: 옷을 구매할 때 참고할 사이즈 및 핏 관련 팁을 알려주세요.

중요 지침:
- 이 보고서는 순수하게 패션과 의류 스타일링에만 집중하세요.
- 건강, 다이어트, 체중 감량, 운동, 의학적 조언은 절대 포함하지 마세요.
- 체형을 부정적으로 평가하거나 체중 변화를 권유하지 마세요.
- 보고서 마지막에 "본 보고서는 AI가 자동 생성한 패션 참고 자료이며, 전문 스타일리스트의 조언을 대체하지 않습니다."라는 문구를 포함해주세요.

보고서는 친근하면서도 전문적인 톤으로 작성해주세요. 마크다운 형식으로 작성해주세요.`

// "male" 외의 값은 모두 여성으로 표기
func genderLabel(l locale.Locale, gender string) string {
	male := gender == "male"
	switch {
	case l == locale.English && male:
		return "Male"
	case l == locale.English:
		return "Female"
	case male:
		return "남성"
	default:
		return "여성"
	}
}

// AnalysisPrompt 리포트 생성용 system 프롬프트
func AnalysisPrompt(l locale.Locale, gender, height, weight string) string {
	if l == locale.English {
		return fmt.Sprintf(analysisPromptEn, genderLabel(l, gender), height, weight)
	}
	return fmt.Sprintf(analysisPromptKo, genderLabel(l, gender), height, weight)
}

// UserMessage 사진과 함께 전달되는 사용자 메시지
func UserMessage(l locale.Locale, gender, height, weight string) string {
	if l == locale.English {
		return fmt.Sprintf("Gender %s, Height %scm, Weight %skg", genderLabel(l, gender), height, weight)
	}
	return fmt.Sprintf("성별 %s, 키 %s, 몸무게 %s", genderLabel(l, gender), height, weight)
}

// StylePrompt 3분할 룩북 이미지 생성 프롬프트
func StylePrompt() string {
	return stylePrompt
}

// FormField images/edits 요청에 순서대로 추가되는 multipart 필드
type FormField struct {
	Name  string
	Value string
}

// ImageFields 이미지 설정을 multipart 필드 목록으로 변환 (빈 값은 제외)
func ImageFields(cfg config.ImageConfig) []FormField {
	fields := []FormField{
		{"model", cfg.Model},
		{"n", strconv.Itoa(cfg.N)},
		{"size", cfg.Size},
		{"quality", cfg.Quality},
		{"background", cfg.Background},
		{"moderation", cfg.Moderation},
		{"input_fidelity", cfg.InputFidelity},
		{"response_format", cfg.ResponseFormat},
	}
	if cfg.N <= 0 {
		fields[1].Value = ""
	}

	out := fields[:0]
	for _, f := range fields {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}
