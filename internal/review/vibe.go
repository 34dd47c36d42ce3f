package review

import "github.com/sstent/garmin-wrapped/internal/models"

// Vibe labels.
const (
	VibeZenMaster      = "Zen Master"
	VibeMachine        = "The Machine"
	VibeEarlyBird      = "Early Bird"
	VibeNightOwl       = "Night Owl"
	VibeLunchBreaker   = "Lunch Breaker"
	VibeWeekendWarrior = "Weekend Warrior"
	VibeVarietyPack    = "Variety Pack"
	VibeMover          = "The Mover"
)

// VibeTraits describes every vibe label.
var VibeTraits = map[string]models.VibeTrait{
	VibeZenMaster:      {Description: "Finding peace in movement.", Icon: "🧘"},
	VibeMachine:        {Description: "You are unstoppable.", Icon: "🤖"},
	VibeEarlyBird:      {Description: "Getting the worm while others sleep.", Icon: "🌅"},
	VibeNightOwl:       {Description: "The city is yours at night.", Icon: "🦉"},
	VibeLunchBreaker:   {Description: "Making the most of your break.", Icon: "🥪"},
	VibeWeekendWarrior: {Description: "Living for the weekend adventures.", Icon: "🗓️"},
	VibeVarietyPack:    {Description: "You tried a bit of everything!", Icon: "🎨"},
	VibeMover:          {Description: "You just love to move.", Icon: "⚡"},
}

// VibeStats are the counters the vibe rules look at. Total must be positive.
type VibeStats struct {
	Total         int
	Relaxation    int
	LongestStreak int
	Morning       int
	Night         int
	Lunch         int
	Weekend       int
	Categories    int
}

func (s VibeStats) share(n int) float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(n) / float64(s.Total)
}

// VibeRule assigns Label when Match holds.
type VibeRule struct {
	Label string
	Match func(VibeStats) bool
}

// VibeRules are evaluated in order; the first match wins.
var VibeRules = []VibeRule{
	{VibeZenMaster, func(s VibeStats) bool { return s.share(s.Relaxation) > relaxationShare }},
	{VibeMachine, func(s VibeStats) bool { return s.LongestStreak > machineStreakWeek }},
	{VibeEarlyBird, func(s VibeStats) bool { return s.share(s.Morning) > morningShare }},
	{VibeNightOwl, func(s VibeStats) bool { return s.share(s.Night) > nightShare }},
	{VibeLunchBreaker, func(s VibeStats) bool { return s.share(s.Lunch) > lunchShare }},
	{VibeWeekendWarrior, func(s VibeStats) bool { return s.share(s.Weekend) > weekendShare }},
	{VibeVarietyPack, func(s VibeStats) bool { return s.Categories > varietyCategories }},
}

// ClassifyVibe returns the label of the first matching rule, or The Mover.
func ClassifyVibe(s VibeStats) string {
	for _, r := range VibeRules {
		if r.Match(s) {
			return r.Label
		}
	}
	return VibeMover
}

func vibeStats(a *aggregate, streak int) VibeStats {
	s := VibeStats{
		Total:         a.total,
		LongestStreak: streak,
		Morning:       a.morning,
		Night:         a.night,
		Lunch:         a.lunch,
		Weekend:       a.weekend,
		Categories:    len(a.categoryOrder),
	}
	for _, c := range a.categoryOrder {
		if IsRelaxation(c.name) {
			s.Relaxation += c.count
		}
	}
	return s
}
