package outline

import (
	"reflect"
	"testing"

	"github.com/kimuponpon0312-alt/ronbun/models"
)

func TestFilterNew_DropsNearDuplicates(t *testing.T) {
	existing := []string{"理論 の 枠組み を 説明する"}
	candidates := []string{
		"理論 の 枠組み を 検討する", // 4/6 shared tokens > 0.5
		"具体 事例 を 挙げる",      // disjoint
	}

	got := FilterNew(candidates, existing)
	want := []string{"具体 事例 を 挙げる"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterNew_GuaranteeAgainstEveryExisting(t *testing.T) {
	existing := []string{
		"理論 の 検証",
		"事例 の 検討",
		"方法論 の 整理",
	}
	candidates := []string{
		"理論 の 検証 補足", // near-dup of first
		"史料 批判 の 視点",
		"事例 の 検討 再考", // near-dup of second
		"反論 へ の 応答",
	}

	got := FilterNew(candidates, existing)
	for _, p := range got {
		for _, e := range existing {
			if s := Similarity(p, e); s > 0.5 {
				t.Errorf("kept point %q has similarity %f > 0.5 to existing %q", p, s, e)
			}
		}
	}
	want := []string{"史料 批判 の 視点", "反論 へ の 応答"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterNew_EmptyExistingKeepsAll(t *testing.T) {
	candidates := []string{"a", "b", "c"}
	got := FilterNew(candidates, nil)
	if !reflect.DeepEqual(got, candidates) {
		t.Fatalf("expected all candidates kept, got %v", got)
	}
}

func TestFilterNew_DoesNotCap(t *testing.T) {
	candidates := []string{"一", "二", "三", "四", "五", "六"}
	got := FilterNew(candidates, []string{"別物"})
	if len(got) != 6 {
		t.Fatalf("filter must not cap results, got %d", len(got))
	}
}

func TestDiversity_EmptyExisting(t *testing.T) {
	if d := Diversity("なんでも", nil); d != 1 {
		t.Fatalf("expected diversity 1 with no existing points, got %f", d)
	}
}

func TestDiversity_IdenticalPoint(t *testing.T) {
	if d := Diversity("理論 検証", []string{"理論 検証"}); d != 0 {
		t.Fatalf("expected diversity 0 against identical point, got %f", d)
	}
}

func TestReorderByIntent_ChangeViewpointPrefersDiverse(t *testing.T) {
	existing := []string{"理論 の 検証"}
	points := []string{
		"理論 の 再 検証", // overlaps existing heavily
		"史料 から の 考察", // disjoint
	}

	got := ReorderByIntent(points, models.IntentChangeViewpoint, existing)
	if got[0] != "史料 から の 考察" {
		t.Fatalf("expected the diverse point first, got %v", got)
	}
}

func TestReorderByIntent_LeanTheorySortsByTermCount(t *testing.T) {
	points := []string{
		"事例 を 紹介する",
		"理論 と 概念 の 分析",
		"モデル の 検討",
	}

	got := ReorderByIntent(points, models.IntentLeanTheory, nil)
	if got[0] != "理論 と 概念 の 分析" {
		t.Fatalf("expected the theory-heavy point first, got %v", got)
	}
}

func TestReorderByIntent_LeanPracticalSortsByTermCount(t *testing.T) {
	points := []string{
		"理論 的 整理",
		"実務 へ の 適用 と 運用",
	}

	got := ReorderByIntent(points, models.IntentLeanPractical, nil)
	if got[0] != "実務 へ の 適用 と 運用" {
		t.Fatalf("expected the practical point first, got %v", got)
	}
}

func TestReorderByIntent_AddExamplePartitionIsStable(t *testing.T) {
	points := []string{
		"理論 整理",
		"事例 その一",
		"方法 検討",
		"具体 その二",
		"反論 検討",
	}

	got := ReorderByIntent(points, models.IntentAddExample, nil)
	want := []string{
		"事例 その一",
		"具体 その二",
		"理論 整理",
		"方法 検討",
		"反論 検討",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected stable partition %v, got %v", want, got)
	}
}

func TestReorderByIntent_CounterargumentPartition(t *testing.T) {
	points := []string{
		"理論 整理",
		"批判 的 吟味",
		"問題 点 の 指摘",
	}

	got := ReorderByIntent(points, models.IntentCounterargument, nil)
	want := []string{"批判 的 吟味", "問題 点 の 指摘", "理論 整理"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestReorderByIntent_AddPointLeavesOrder(t *testing.T) {
	points := []string{"b", "a", "c"}
	got := ReorderByIntent(points, models.IntentAddPoint, []string{"x"})
	if !reflect.DeepEqual(got, points) {
		t.Fatalf("論点追加 must not reorder, got %v", got)
	}
}

func TestReorderByIntent_DoesNotMutateInput(t *testing.T) {
	points := []string{"理論 整理", "事例 紹介"}
	snapshot := append([]string(nil), points...)

	ReorderByIntent(points, models.IntentAddExample, nil)
	if !reflect.DeepEqual(points, snapshot) {
		t.Fatal("reorder mutated its input slice")
	}
}
