package outline

import "github.com/kimuponpon0312-alt/ronbun/models"

// Similarity bands for diff classification. A new point above the
// unchanged band matches an old point and is not reported; one inside
// (modifiedLow, unchanged] pairs as a modification; below that it is an
// addition.
const (
	diffUnchangedThreshold = 0.7
	diffModifiedThreshold  = 0.3
)

// Diff compares two outline snapshots section by section (matched by
// title) and classifies every point as added, removed, or modified.
//
// Modified pairing is greedy: the first old point (in old order) inside
// the modified band becomes the "before". When several old points are
// moderately similar to one new point this can mis-pair; downstream
// rendering depends on that exact choice, so it stays as-is.
func Diff(oldOutline, newOutline models.ReportOutline) models.OutlineDiffResult {
	diffs := make([]models.OutlineDiff, 0)
	hasChanges := false

	for _, oldSection := range oldOutline.Sections {
		newSection := findSection(newOutline.Sections, oldSection.Title)
		if newSection == nil {
			// Section removed entirely
			diffs = append(diffs, models.OutlineDiff{
				SectionTitle:   oldSection.Title,
				AddedPoints:    []string{},
				RemovedPoints:  oldSection.Points,
				ModifiedPoints: []models.ModifiedPoint{},
			})
			hasChanges = true
			continue
		}

		d := diffSection(oldSection.Points, newSection.Points, oldSection.Title)
		if len(d.AddedPoints) > 0 || len(d.RemovedPoints) > 0 || len(d.ModifiedPoints) > 0 {
			diffs = append(diffs, d)
			hasChanges = true
		}
	}

	// Sections present only in the new outline
	for _, newSection := range newOutline.Sections {
		if findSection(oldOutline.Sections, newSection.Title) == nil && len(newSection.Points) > 0 {
			diffs = append(diffs, models.OutlineDiff{
				SectionTitle:   newSection.Title,
				AddedPoints:    newSection.Points,
				RemovedPoints:  []string{},
				ModifiedPoints: []models.ModifiedPoint{},
			})
			hasChanges = true
		}
	}

	return models.OutlineDiffResult{Diffs: diffs, HasChanges: hasChanges}
}

func diffSection(oldPoints, newPoints []string, title string) models.OutlineDiff {
	added := []string{}
	removed := []string{}
	modified := []models.ModifiedPoint{}

	for _, newPoint := range newPoints {
		if hasSimilarAbove(oldPoints, newPoint, diffUnchangedThreshold) {
			continue // unchanged, not reported
		}

		before, index := findModifiedBefore(oldPoints, newPoint)
		if index >= 0 {
			modified = append(modified, models.ModifiedPoint{
				Before: before,
				After:  newPoint,
				Index:  index,
			})
		} else {
			added = append(added, newPoint)
		}
	}

	for _, oldPoint := range oldPoints {
		if hasSimilarAbove(newPoints, oldPoint, diffUnchangedThreshold) {
			continue
		}
		if consumedAsBefore(modified, oldPoint) {
			continue
		}
		removed = append(removed, oldPoint)
	}

	return models.OutlineDiff{
		SectionTitle:   title,
		AddedPoints:    added,
		RemovedPoints:  removed,
		ModifiedPoints: modified,
	}
}

// findModifiedBefore returns the first old point inside the modified
// band for the given new point, with its original index, or ("", -1).
func findModifiedBefore(oldPoints []string, newPoint string) (string, int) {
	for i, oldPoint := range oldPoints {
		s := Similarity(newPoint, oldPoint)
		if s > diffModifiedThreshold && s <= diffUnchangedThreshold {
			return oldPoint, i
		}
	}
	return "", -1
}

func hasSimilarAbove(points []string, target string, threshold float64) bool {
	for _, p := range points {
		if Similarity(target, p) > threshold {
			return true
		}
	}
	return false
}

func consumedAsBefore(modified []models.ModifiedPoint, point string) bool {
	for _, m := range modified {
		if m.Before == point {
			return true
		}
	}
	return false
}

func findSection(sections models.Sections, title string) *models.Section {
	for i := range sections {
		if sections[i].Title == title {
			return &sections[i]
		}
	}
	return nil
}
