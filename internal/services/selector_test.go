package services

import (
	"math/rand"
	"testing"

	"github.com/ezmeo/wheel-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testPrize(name string, weight float64, order int) *models.Prize {
	return &models.Prize{
		ID:               primitive.NewObjectID(),
		Name:             name,
		PrizeType:        models.PrizeTypeCoupon,
		Coupon:           &models.CouponSpec{CodePrefix: "T", DiscountKind: models.DiscountKindPercent, DiscountValue: 10},
		ProbabilityValue: weight,
		IsUnlimitedStock: true,
		DisplayOrder:     order,
		IsActive:         true,
	}
}

func TestSelectPrizeEmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Nil(t, SelectPrize(nil, models.ProbabilityModePercentage, rng))
	assert.Nil(t, SelectPrize([]*models.Prize{}, models.ProbabilityModeWeight, rng))
}

func TestSelectPrizeExcludesInactive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	active := testPrize("active", 10, 1)
	inactive := testPrize("inactive", 90, 0)
	inactive.IsActive = false

	for i := 0; i < 1000; i++ {
		got := SelectPrize([]*models.Prize{inactive, active}, models.ProbabilityModePercentage, rng)
		require.NotNil(t, got)
		assert.Equal(t, "active", got.Name)
	}
}

func TestSelectPrizeExcludesExhaustedStock(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	// The heaviest segment is out of stock and must never win, even though its
	// configured weight dominates the wheel.
	exhausted := testPrize("big", 90, 0)
	exhausted.IsUnlimitedStock = false
	exhausted.StockTotal = 10
	exhausted.StockRemaining = 0
	available := testPrize("small", 10, 1)
	available.IsUnlimitedStock = false
	available.StockTotal = 5
	available.StockRemaining = 5

	for i := 0; i < 1000; i++ {
		got := SelectPrize([]*models.Prize{exhausted, available}, models.ProbabilityModePercentage, rng)
		require.NotNil(t, got)
		assert.Equal(t, "small", got.Name)
	}
}

func TestSelectPrizeNoneSegmentIsAlwaysDrawable(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	none := &models.Prize{
		ID:           primitive.NewObjectID(),
		Name:         "try again",
		PrizeType:    models.PrizeTypeNone,
		DisplayOrder: 0,
		IsActive:     true,
		// no stock fields set: a none segment carries no inventory
	}

	got := SelectPrize([]*models.Prize{none}, models.ProbabilityModePercentage, rng)
	require.NotNil(t, got)
	assert.Equal(t, models.PrizeTypeNone, got.PrizeType)
}

func TestSelectPrizeZeroWeightFallsBackToUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := testPrize("a", 0, 0)
	b := testPrize("b", 0, 1)

	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		got := SelectPrize([]*models.Prize{a, b}, models.ProbabilityModePercentage, rng)
		require.NotNil(t, got, "misconfigured weights must not produce zero winners")
		counts[got.Name]++
	}
	// Uniform over two segments: roughly half each.
	assert.InDelta(t, 5000, counts["a"], 500)
	assert.InDelta(t, 5000, counts["b"], 500)
}

func TestSelectPrizeRespectsWeightsInAggregate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	prizes := []*models.Prize{
		testPrize("half", 50, 0),
		testPrize("third", 30, 1),
		testPrize("fifth", 20, 2),
	}

	const draws = 100000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		got := SelectPrize(prizes, models.ProbabilityModePercentage, rng)
		require.NotNil(t, got)
		counts[got.Name]++
	}

	// Empirical rates converge to w_i/W; 1% absolute tolerance at N=100k is
	// more than six standard deviations out.
	assert.InDelta(t, 0.50, float64(counts["half"])/draws, 0.01)
	assert.InDelta(t, 0.30, float64(counts["third"])/draws, 0.01)
	assert.InDelta(t, 0.20, float64(counts["fifth"])/draws, 0.01)
}

func TestSelectPrizeWeightModeNormalizesLikePercentage(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	// Arbitrary relative weights summing nowhere near 100.
	prizes := []*models.Prize{
		testPrize("x", 3, 0),
		testPrize("y", 1, 1),
	}

	const draws = 50000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[SelectPrize(prizes, models.ProbabilityModeWeight, rng).Name]++
	}

	assert.InDelta(t, 0.75, float64(counts["x"])/draws, 0.01)
	assert.InDelta(t, 0.25, float64(counts["y"])/draws, 0.01)
}

func TestSelectPrizeNormalizesAfterFiltering(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	// Percentages summed to 100 before "gone" ran out of stock; the selector
	// must renormalize over the survivors instead of assuming the original sum.
	gone := testPrize("gone", 60, 0)
	gone.IsUnlimitedStock = false
	gone.StockRemaining = 0
	a := testPrize("a", 30, 1)
	b := testPrize("b", 10, 2)

	const draws = 50000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[SelectPrize([]*models.Prize{gone, a, b}, models.ProbabilityModePercentage, rng).Name]++
	}

	assert.Zero(t, counts["gone"])
	assert.InDelta(t, 0.75, float64(counts["a"])/draws, 0.01)
	assert.InDelta(t, 0.25, float64(counts["b"])/draws, 0.01)
}

func TestSelectPrizeDeterministicWithSeededSource(t *testing.T) {
	prizes := []*models.Prize{
		testPrize("a", 40, 0),
		testPrize("b", 35, 1),
		testPrize("c", 25, 2),
	}

	first := make([]string, 0, 100)
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		first = append(first, SelectPrize(prizes, models.ProbabilityModePercentage, rng).Name)
	}

	second := make([]string, 0, 100)
	rng = rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		second = append(second, SelectPrize(prizes, models.ProbabilityModePercentage, rng).Name)
	}

	assert.Equal(t, first, second)
}
