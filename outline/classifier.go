package outline

import (
	"math"
	"sort"
	"strings"

	"github.com/kimuponpon0312-alt/ronbun/models"
)

// tagKeywords maps each tag to its keyword list. The iteration order is
// fixed so confidence ties resolve the same way on every call.
var tagKeywords = []struct {
	tag      models.PointTag
	keywords []string
}{
	{models.TagTheory, []string{"理論", "概念", "フレームワーク", "モデル", "仮説", "学説", "理論的"}},
	{models.TagPractice, []string{"実務", "実践", "適用", "運用", "実際", "具体的", "実践的"}},
	{models.TagHistory, []string{"歴史", "史料", "時代", "背景", "史的", "過去", "歴史的"}},
	{models.TagComparison, []string{"比較", "対比", "相違", "類似", "差異", "対照"}},
	{models.TagExample, []string{"事例", "例", "具体", "ケース", "サンプル", "実例"}},
	{models.TagCounterargument, []string{"反論", "批判", "異論", "問題", "限界", "課題", "批判的"}},
	{models.TagDefinition, []string{"定義", "意味", "概念", "規定", "解釈"}},
	{models.TagAnalysis, []string{"分析", "検討", "考察", "解釈", "検証", "評価"}},
	{models.TagMethodology, []string{"方法", "手法", "アプローチ", "方法論", "手順"}},
	{models.TagVerification, []string{"検証", "実証", "立証", "証明", "確認"}},
}

const (
	tagConfidenceFloor = 0.3
	maxTagsPerPoint    = 3
)

// Classify assigns up to three tags to a point by keyword matching.
// Confidence is min(matched/total*2, 1) rounded to two decimals; tags
// below 0.3 are dropped. A point matching nothing gets the catch-all
// 分析 tag at 0.5 so every point carries at least one tag.
func Classify(text string) models.TaggedPoint {
	tags := make([]models.TagScore, 0, len(tagKeywords))

	for _, tk := range tagKeywords {
		matched := 0
		for _, keyword := range tk.keywords {
			if strings.Contains(text, keyword) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		confidence := math.Min(float64(matched)/float64(len(tk.keywords))*2, 1.0)
		confidence = math.Round(confidence*100) / 100
		if confidence >= tagConfidenceFloor {
			tags = append(tags, models.TagScore{Tag: tk.tag, Confidence: confidence})
		}
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Confidence > tags[j].Confidence
	})
	if len(tags) > maxTagsPerPoint {
		tags = tags[:maxTagsPerPoint]
	}

	if len(tags) == 0 {
		tags = []models.TagScore{{Tag: models.TagAnalysis, Confidence: 0.5}}
	}

	return models.TaggedPoint{Text: text, Tags: tags}
}

// ClassifyPoints classifies each point independently, preserving order.
func ClassifyPoints(points []string) []models.TaggedPoint {
	tagged := make([]models.TaggedPoint, len(points))
	for i, p := range points {
		tagged[i] = Classify(p)
	}
	return tagged
}

// FilterByTags keeps tagged points carrying at least one of the selected
// tags. An empty selection means no filtering.
func FilterByTags(taggedPoints []models.TaggedPoint, selected []models.PointTag) []models.TaggedPoint {
	if len(selected) == 0 {
		return taggedPoints
	}

	filtered := make([]models.TaggedPoint, 0, len(taggedPoints))
	for _, tp := range taggedPoints {
		for _, ts := range tp.Tags {
			if containsTag(selected, ts.Tag) {
				filtered = append(filtered, tp)
				break
			}
		}
	}
	return filtered
}

func containsTag(tags []models.PointTag, tag models.PointTag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
