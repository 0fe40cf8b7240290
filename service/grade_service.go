package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/kimuponpon0312-alt/ronbun/llm"
	"github.com/kimuponpon0312-alt/ronbun/models"
)

// GradeService evaluates outlines and generates opening sentences
// through the configured LLM provider. Every path degrades to a dummy
// result when the provider is missing or misbehaves; grading never
// fails a request.
type GradeService struct {
	client llm.Client
}

// GradeServiceOption is a functional option for GradeService
type GradeServiceOption func(*GradeService)

// WithLLMClient sets the text-generation client
func WithLLMClient(client llm.Client) GradeServiceOption {
	return func(s *GradeService) {
		s.client = client
	}
}

// NewGradeService creates a new grade service
func NewGradeService(opts ...GradeServiceOption) *GradeService {
	s := &GradeService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fieldDisplayNames maps field keys to their Japanese labels
var fieldDisplayNames = map[models.Field]string{
	models.FieldLiterature: "文学",
	models.FieldLaw:        "法学",
	models.FieldPhilosophy: "哲学",
	models.FieldSociology:  "社会学",
	models.FieldHistory:    "歴史学",
}

// sectionRoles describes each section for prompt context
var sectionRoles = map[string]string{
	models.SectionIntro:      "研究の背景、問題設定、目的を提示する導入部分",
	models.SectionBody:       "主要な論点を展開し、分析や検討を行う中心部分",
	models.SectionConclusion: "議論を総括し、成果や今後の展望を示す締めくくり部分",
}

// dummyGradeResult is the development fallback evaluation
func dummyGradeResult() *models.GradeResult {
	return &models.GradeResult{
		Grade:   models.GradeB,
		Comment: "構成は基本的な要素を押さえていますが、理論的な深掘りが不足しています。もう少し先行研究との対話を意識してください。",
		MissingPoints: []string{
			"先行研究の批判的検討",
			"理論的フレームワークの明確化",
		},
	}
}

// GradeOutline asks the LLM to evaluate an outline as a strict
// professor would. The response must be valid JSON with a known grade,
// a nonempty comment, and a missingPoints array; anything else falls
// back to the dummy result.
func (s *GradeService) GradeOutline(ctx context.Context, field models.Field, question string, reportOutline models.ReportOutline) *models.GradeResult {
	if s.client == nil {
		log.Println("[GradeOutline] llm client not configured, returning dummy result")
		return dummyGradeResult()
	}

	fieldName := fieldDisplayNames[field]
	prompt := fmt.Sprintf(`あなたは%sの厳格な教授です。学生のレポート構成案を厳しく評価してください。

【課題文】
%s

【レポート構成】
%s

以下のJSON形式で評価結果を返してください：
{
  "grade": "S" | "A" | "B" | "C" | "D"（S=最高、D=不可）,
  "comment": "辛口のフィードバックコメント（100文字程度）",
  "missingPoints": ["不足している視点1", "不足している視点2"]
}

JSONのみを返してください。`, fieldName, question, renderOutlineText(reportOutline))

	responseText, err := s.client.Complete(ctx, prompt, 0.7)
	if err != nil {
		log.Printf("[GradeOutline] generation failed: %v", err)
		return dummyGradeResult()
	}

	result, err := parseGradeResponse(responseText)
	if err != nil {
		log.Printf("[GradeOutline] invalid response: %v", err)
		return dummyGradeResult()
	}
	return result
}

// parseGradeResponse validates the LLM's JSON evaluation
func parseGradeResponse(responseText string) (*models.GradeResult, error) {
	// Models sometimes wrap JSON in a code fence despite instructions
	cleaned := strings.TrimSpace(responseText)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result models.GradeResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	if !result.Grade.IsValid() {
		return nil, fmt.Errorf("unknown grade %q", result.Grade)
	}
	if result.Comment == "" {
		return nil, fmt.Errorf("comment is empty")
	}
	if result.MissingPoints == nil {
		result.MissingPoints = []string{}
	}

	return &result, nil
}

// renderOutlineText flattens an outline for prompt embedding
func renderOutlineText(reportOutline models.ReportOutline) string {
	var sb strings.Builder
	for i, section := range reportOutline.Sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("【" + section.Title + "】\n")
		for j, point := range section.Points {
			if j > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "%d. %s", j+1, point)
		}
	}
	return sb.String()
}

// dummySentenceTemplates are the opening-sentence fallbacks
var dummySentenceTemplates = []string{
	"本節では、%sについて、%sの観点から詳細に検討する。",
	"以上の背景を踏まえ、本稿では%sに着目し、議論を展開する。",
	"%sに関して、%sの文脈において、以下に分析を加える。",
	"本項では、%sを中心に、%sの視点から考察を行う。",
}

func dummySentence(point, sectionContext string) string {
	tmpl := dummySentenceTemplates[rand.Intn(len(dummySentenceTemplates))]
	if strings.Count(tmpl, "%s") == 1 {
		return fmt.Sprintf(tmpl, point)
	}
	return fmt.Sprintf(tmpl, point, sectionContext)
}

// GenerateSentence asks the LLM for an academic opening sentence for a
// point. Empty points and provider failures fall back to a template.
func (s *GradeService) GenerateSentence(ctx context.Context, field models.Field, point, sectionContext string) string {
	if strings.TrimSpace(point) == "" {
		log.Println("[GenerateSentence] point is empty, returning template sentence")
		return dummySentence(point, sectionContext)
	}
	if s.client == nil {
		log.Println("[GenerateSentence] llm client not configured, returning template sentence")
		return dummySentence(point, sectionContext)
	}

	fieldName := fieldDisplayNames[field]
	role := sectionRoles[sectionContext]
	if role == "" {
		role = sectionContext
	}

	prompt := fmt.Sprintf(`あなたは%sの学術論文を執筆する学生の指導をしている教授です。

以下の論点について、アカデミックな書き出しの一文を生成してください。

【セクションの役割】
%s

【論点】
%s

【要件】
- 学術的な文体で、簡潔で明確な一文
- その論点を書き始めるための導入文
- 50文字程度
- 日本語で記述

一文のみを返してください。説明や補足は不要です。`, fieldName, role, point)

	responseText, err := s.client.Complete(ctx, prompt, 0.7)
	if err != nil {
		log.Printf("[GenerateSentence] generation failed: %v", err)
		return dummySentence(point, sectionContext)
	}

	// Take the first substantive line; models occasionally echo the
	// prompt headers back
	for _, line := range strings.Split(responseText, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "【") && !strings.HasPrefix(line, "*") {
			return line
		}
	}
	return strings.TrimSpace(responseText)
}
