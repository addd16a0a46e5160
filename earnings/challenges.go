package earnings

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAILY CHALLENGES
// =============================================================================
// One challenge is generated per calendar day, picked at random from a fixed
// template set and parameterized by the day's target. Challenges dated on a
// different day are purged on month rollover.

type challengeTemplate struct {
	title       string
	description string
	reward      string
	multiplier  decimal.Decimal
}

var challengeTemplates = []challengeTemplate{
	{
		title:       "Quick Start",
		description: "Bank a quarter of today's target",
		reward:      "A guilt-free break",
		multiplier:  decimal.NewFromFloat(0.25),
	},
	{
		title:       "Halfway Sprint",
		description: "Reach half of today's target",
		reward:      "Lunch on the house",
		multiplier:  decimal.NewFromFloat(0.5),
	},
	{
		title:       "Full Send",
		description: "Hit the full daily target",
		reward:      "Call it a day early",
		multiplier:  decimal.NewFromInt(1),
	},
	{
		title:       "Stretch Goal",
		description: "Beat today's target by a quarter",
		reward:      "Treat yourself tonight",
		multiplier:  decimal.NewFromFloat(1.25),
	},
}

// GenerateChallenge picks a template for the day containing at and scales it
// by dailyTarget. The rng is injectable so generation is deterministic in
// tests.
func GenerateChallenge(dailyTarget decimal.Decimal, at time.Time, rng *rand.Rand) Challenge {
	tpl := challengeTemplates[rng.Intn(len(challengeTemplates))]
	target := dailyTarget.Mul(tpl.multiplier).Round(2)
	return Challenge{
		Title:        tpl.title,
		Description:  fmt.Sprintf("%s (%s)", tpl.description, target.StringFixed(2)),
		TargetAmount: target,
		Reward:       tpl.reward,
		Date:         DayStart(at),
		CreatedAt:    at,
	}
}

// challengeFor returns the index of the challenge dated on the day containing
// at, or -1 when none exists.
func challengeFor(challenges []Challenge, at time.Time) int {
	for i := range challenges {
		if challenges[i].IsFor(at) {
			return i
		}
	}
	return -1
}

// purgeStaleChallenges keeps only the challenge dated on the day containing
// at.
func purgeStaleChallenges(challenges []Challenge, at time.Time) []Challenge {
	kept := challenges[:0]
	for _, c := range challenges {
		if c.IsFor(at) {
			kept = append(kept, c)
		}
	}
	return kept
}
