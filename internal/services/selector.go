package services

import (
	"math/rand"
	"sort"

	"github.com/ezmeo/wheel-backend/internal/models"
)

// Rand is the subset of *rand.Rand the prize selector needs. Production code
// passes GlobalRand; tests pass a seeded *rand.Rand for reproducible draws.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// GlobalRand adapts the package-level math/rand functions, which are safe for
// concurrent use by multiple request handlers.
type GlobalRand struct{}

func (GlobalRand) Float64() float64 { return rand.Float64() }
func (GlobalRand) Intn(n int) int   { return rand.Intn(n) }

// SelectPrize draws one segment from the pool honoring weights and stock.
//
// Inactive and stock-exhausted segments are filtered out first; their visual
// slots remain on the wheel but they cannot win. If nothing is drawable the
// selector returns nil and the caller records a non-winning spin. Weights are
// normalized over the filtered pool, so percentages need not sum to 100 once
// out-of-stock segments drop out. The cumulative walk runs in displayOrder, so
// a seeded Rand replays the same sequence of outcomes.
//
// If every drawable segment has weight zero (misconfiguration), the draw falls
// back to a uniform pick over the pool rather than producing zero winners from
// valid inventory.
func SelectPrize(prizes []*models.Prize, mode models.ProbabilityMode, rng Rand) *models.Prize {
	pool := make([]*models.Prize, 0, len(prizes))
	for _, p := range prizes {
		if p.Awardable() {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].DisplayOrder < pool[j].DisplayOrder
	})

	// Both probability modes reduce to relative weights once normalized; the
	// mode only changes how admins express the values.
	totalWeight := 0.0
	for _, p := range pool {
		if w := p.ProbabilityValue; w > 0 {
			totalWeight += w
		}
	}

	if totalWeight <= 0 {
		return pool[rng.Intn(len(pool))]
	}

	draw := rng.Float64() * totalWeight
	cumulative := 0.0
	for _, p := range pool {
		if p.ProbabilityValue <= 0 {
			continue
		}
		cumulative += p.ProbabilityValue
		if draw < cumulative {
			return p
		}
	}
	// Unreachable unless float rounding puts draw exactly at totalWeight.
	return pool[len(pool)-1]
}
