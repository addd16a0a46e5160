package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ACHIEVEMENT CATALOG
// =============================================================================
// The catalog is static and ordered; evaluation walks it in index order so
// unlock events fire deterministically. Unlocking is monotonic: an unlocked
// achievement is never re-locked and its event fires at most once.

// CoffeeMoneyThreshold is the fixed amount behind the "Coffee Money"
// achievement.
var CoffeeMoneyThreshold = decimal.NewFromInt(5)

type achievementSpec struct {
	title       string
	description string
	icon        string
	satisfied   func(amount decimal.Decimal, progress float64) bool
}

var achievementCatalog = []achievementSpec{
	{
		title:       "First Dollar",
		description: "Record your first earnings of the day",
		icon:        "dollar",
		satisfied: func(amount decimal.Decimal, _ float64) bool {
			return amount.IsPositive()
		},
	},
	{
		title:       "Half Way There",
		description: "Reach 50% of today's target",
		icon:        "gauge",
		satisfied: func(_ decimal.Decimal, progress float64) bool {
			return progress >= 0.5
		},
	},
	{
		title:       "Goal Crusher",
		description: "Hit 100% of today's target",
		icon:        "trophy",
		satisfied: func(_ decimal.Decimal, progress float64) bool {
			return progress >= 1.0
		},
	},
	{
		title:       "Overachiever",
		description: "Earn 150% of today's target",
		icon:        "rocket",
		satisfied: func(_ decimal.Decimal, progress float64) bool {
			return progress >= 1.5
		},
	},
	{
		title:       "Coffee Money",
		description: "Earn enough for a good coffee",
		icon:        "coffee",
		satisfied: func(amount decimal.Decimal, _ float64) bool {
			return amount.GreaterThanOrEqual(CoffeeMoneyThreshold)
		},
	},
}

// SeedAchievements builds the initial locked catalog. Called once when the
// persisted list is empty.
func SeedAchievements() []Achievement {
	out := make([]Achievement, len(achievementCatalog))
	for i, spec := range achievementCatalog {
		out[i] = Achievement{
			Index:       i,
			Title:       spec.title,
			Description: spec.description,
			Icon:        spec.icon,
		}
	}
	return out
}

// evaluateAchievements flips newly satisfied achievements in catalog order
// and returns the indices unlocked by this evaluation. progress here is the
// uncapped amount/target ratio so the 150% tier stays reachable.
func evaluateAchievements(list []Achievement, amount decimal.Decimal, progress float64, at time.Time) []int {
	var unlocked []int
	for i := range list {
		if list[i].Unlocked {
			continue
		}
		idx := list[i].Index
		if idx < 0 || idx >= len(achievementCatalog) {
			continue
		}
		if achievementCatalog[idx].satisfied(amount, progress) {
			ts := at
			list[i].Unlocked = true
			list[i].UnlockedAt = &ts
			unlocked = append(unlocked, idx)
		}
	}
	return unlocked
}
