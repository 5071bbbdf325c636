package services

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/fr0stylo/gamecatalog/internal/app/domain"
)

// Flatten collects the object-valued leaves of a nested array structure in
// depth-first, left-to-right order. Primitives are dropped and objects are not
// descended into. Non-array input yields an empty slice.
func Flatten(value any) []map[string]any {
	items, ok := value.([]any)
	if !ok {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(items))
	return appendObjects(out, items)
}

func appendObjects(out []map[string]any, items []any) []map[string]any {
	for _, item := range items {
		switch typed := item.(type) {
		case map[string]any:
			out = append(out, typed)
		case []any:
			out = appendObjects(out, typed)
		}
	}
	return out
}

// Normalize maps one raw feed object onto a game for the given platform and
// scores it. ok is false when the entry has no usable store id.
func Normalize(item map[string]any, platform string) (domain.Candidate, bool) {
	storeID := stringField(item, "app_id")
	if strings.TrimSpace(storeID) == "" {
		return domain.Candidate{}, false
	}

	isPublished := true
	if published, ok := item["isPublished"].(bool); ok {
		isPublished = published
	}

	return domain.Candidate{
		Game: domain.Game{
			PublisherID: stringField(item, "publisher_id"),
			Name:        stringField(item, "humanized_name"),
			Platform:    platform,
			StoreID:     storeID,
			BundleID:    stringField(item, "bundle_id"),
			AppVersion:  stringField(item, "version"),
			IsPublished: isPublished,
		},
		Score: numberField(item, "rating") * numberField(item, "rating_count"),
	}, true
}

// NormalizeAll flattens one decoded feed and normalizes every usable entry.
func NormalizeAll(feed any, platform string) []domain.Candidate {
	items := Flatten(feed)
	out := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		if candidate, ok := Normalize(item, platform); ok {
			out = append(out, candidate)
		}
	}
	return out
}

// RankTop sorts candidates by descending score and keeps the first limit.
// The sort is stable: equal scores keep their input order, so the earlier
// source and the earlier feed position win at the cutoff.
func RankTop(candidates []domain.Candidate, limit int) []domain.Candidate {
	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b domain.Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func stringField(item map[string]any, key string) string {
	value, ok := item[key]
	if !ok || value == nil {
		return ""
	}
	switch value.(type) {
	case map[string]any, []any:
		return ""
	}
	return cast.ToString(value)
}

func numberField(item map[string]any, key string) float64 {
	value, ok := item[key]
	if !ok || value == nil {
		return 0
	}
	if text, isText := value.(string); isText {
		value = strings.TrimSpace(text)
	}
	number, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0
	}
	return number
}
