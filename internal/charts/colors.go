package charts

import (
	"regexp"
	"strings"
)

// DefaultProviderColor is used for providers without a palette entry.
const DefaultProviderColor = "#888888"

var providerColors = map[string]string{
	"anthropic": "#d97757",
	"openai":    "#10a37f",
	"google":    "#4285f4",
	"meta":      "#0668E1",
	"mistral":   "#FF7000",
	"cohere":    "#D18EE2",
}

var categoryIcons = map[string]string{
	"calendar":      "📅",
	"research":      "🔍",
	"writing":       "✍️",
	"coding":        "💻",
	"comprehension": "📖",
	"context":       "🧠",
	"complex":       "🔗",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ProviderColor returns the brand color for provider.
func ProviderColor(provider string) string {
	key := whitespaceRun.ReplaceAllString(strings.ToLower(provider), "-")
	if c, ok := providerColors[key]; ok {
		return c
	}
	return DefaultProviderColor
}

// CategoryIcon returns the emoji for a task category, or "" if none.
func CategoryIcon(category string) string {
	return categoryIcons[category]
}

// Tone is a coarse traffic-light classification of a percentage.
type Tone string

const (
	ToneGood Tone = "green"
	ToneFair Tone = "yellow"
	TonePoor Tone = "red"
)

// PercentageTone classifies a 0-100 score: >=85 good, >=70 fair, else poor.
func PercentageTone(pct float64) Tone {
	switch {
	case pct >= 85:
		return ToneGood
	case pct >= 70:
		return ToneFair
	default:
		return TonePoor
	}
}

// RankMedal returns the leaderboard medal for the top three ranks.
func RankMedal(rank int) string {
	switch rank {
	case 1:
		return "🦞"
	case 2:
		return "🦀"
	case 3:
		return "🦐"
	}
	return ""
}
