package service

import (
	"testing"

	"PortfolioMandala/internal/config"
	"PortfolioMandala/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeTier(t *testing.T) {
	cases := []struct {
		volume float64
		tier   string
	}{
		{0, "Beginner"},
		{99.99, "Beginner"},
		{100, "Casual Trader"},
		{1000, "Casual Trader"}, // 仅此档上界取闭区间
		{1000.01, "Regular Trader"},
		{9999.99, "Regular Trader"},
		{10000, "Active Trader"},
		{99999.99, "Active Trader"},
		{100000, "High Roller"},
		{999999.99, "High Roller"},
		{1000000, "Whale"},
		{5000000, "Whale"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, volumeTier(tc.volume), "volume=%v", tc.volume)
	}
}

func TestActivityLevel(t *testing.T) {
	assert.Equal(t, "Minimal", activityLevel(0))
	assert.Equal(t, "Minimal", activityLevel(9))
	assert.Equal(t, "Light", activityLevel(10))
	assert.Equal(t, "Moderate", activityLevel(99))
	assert.Equal(t, "Active", activityLevel(100))
	assert.Equal(t, "Very Active", activityLevel(999))
	assert.Equal(t, "Hyperactive", activityLevel(1000))
}

func TestHerfindahlIndex(t *testing.T) {
	assert.InDelta(t, 1.0, herfindahlIndex(map[string]float64{"crypto": 100}), 1e-9)
	assert.InDelta(t, 0.52, herfindahlIndex(map[string]float64{"crypto": 60, "sports": 40}), 1e-9)
	assert.Zero(t, herfindahlIndex(nil))
}

func TestDiversityLabel(t *testing.T) {
	assert.Equal(t, "None", diversityLabel(nil))
	assert.Equal(t, "Focused", diversityLabel(map[string]float64{"crypto": 100}))
	assert.Equal(t, "Moderate", diversityLabel(map[string]float64{"crypto": 70, "sports": 30}))
	assert.Equal(t, "Diversified", diversityLabel(map[string]float64{"crypto": 50, "sports": 30, "politics": 20}))
	assert.Equal(t, "Highly Diversified", diversityLabel(map[string]float64{
		"crypto": 25, "sports": 25, "politics": 25, "economics": 25,
	}))
}

func TestPatternType(t *testing.T) {
	assert.Equal(t, "Awaiting Data", patternType(0))
	assert.Equal(t, "Spiral Flow", patternType(1))
	assert.Equal(t, "Dual Flow", patternType(2))
	assert.Equal(t, "Trinity Flow", patternType(3))
	assert.Equal(t, "Network Flow", patternType(4))
	assert.Equal(t, "Network Flow", patternType(7))
}

func TestRarityScoreBounds(t *testing.T) {
	assert.Zero(t, rarityScore(model.EmptyPortfolioSummary("0xabc")))

	// 各分量均打满：成交额30 + 活跃25 + 多样20 + 均衡25
	maxed := &model.PortfolioSummary{
		TotalVolume:      1_000_000,
		TradeCount:       1000,
		CategoriesTraded: 6,
		CategoryPercentages: map[string]float64{
			"politics": 100.0 / 6, "crypto": 100.0 / 6, "sports": 100.0 / 6,
			"entertainment": 100.0 / 6, "technology": 100.0 / 6, "economics": 100.0 / 6,
		},
	}
	assert.InDelta(t, 100, rarityScore(maxed), 1e-6)

	skewed := &model.PortfolioSummary{
		TotalVolume:         500,
		TradeCount:          5,
		CategoriesTraded:    2,
		CategoryPercentages: map[string]float64{"crypto": 99, "sports": 1},
	}
	score := rarityScore(skewed)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestGenerateTokenMetadata(t *testing.T) {
	gen := NewMetadataGenerator(&config.NFTConfig{
		ImageBaseURL:    "https://mandala.example/api/image",
		ExternalBaseURL: "https://mandala.example/view",
	})
	portfolio := &model.PortfolioSummary{
		TraderAddress:       "0xabc",
		TotalVolume:         1000,
		TradeCount:          3,
		CategoriesTraded:    1,
		CategoryVolumes:     map[string]float64{"crypto": 1000},
		CategoryPercentages: map[string]float64{"crypto": 100},
	}

	md := gen.GenerateTokenMetadata(7, portfolio, "0xabc")

	assert.Equal(t, "Portfolio Mandala #7", md.Name)
	assert.Equal(t, "https://mandala.example/api/image/7", md.Image)
	assert.Equal(t, "https://mandala.example/view/7", md.ExternalURL)

	attrs := map[string]interface{}{}
	for _, a := range md.Attributes {
		attrs[a.TraitType] = a.Value
	}
	assert.Equal(t, "Casual Trader", attrs["Volume Tier"])
	assert.Equal(t, "Minimal", attrs["Activity Level"])
	assert.Equal(t, "Focused", attrs["Portfolio Diversity"])
	assert.Equal(t, "Spiral Flow", attrs["Pattern Type"])
	assert.Equal(t, "Crypto", attrs["Dominant Category"])
	require.Contains(t, attrs, "Dominant Category Percentage")
	assert.InDelta(t, 100, attrs["Dominant Category Percentage"].(float64), 1e-9)
	require.Contains(t, attrs, "Crypto %")
	assert.InDelta(t, 100, attrs["Crypto %"].(float64), 1e-9)
	assert.Equal(t, 3, attrs["Trade Count"])
}

func TestGenerateTokenMetadataSkipsMinorCategories(t *testing.T) {
	gen := NewMetadataGenerator(&config.NFTConfig{})
	portfolio := &model.PortfolioSummary{
		TotalVolume:      100,
		TradeCount:       2,
		CategoriesTraded: 2,
		CategoryPercentages: map[string]float64{
			"crypto": 96, "sports": 4,
		},
	}

	md := gen.GenerateTokenMetadata(1, portfolio, "0xabc")

	traits := make([]string, 0, len(md.Attributes))
	for _, a := range md.Attributes {
		traits = append(traits, a.TraitType)
	}
	assert.Contains(t, traits, "Crypto %")
	assert.NotContains(t, traits, "Sports %")
}

func TestGenerateContractMetadata(t *testing.T) {
	gen := NewMetadataGenerator(&config.NFTConfig{
		ImageBaseURL:    "https://mandala.example/api/image",
		ExternalBaseURL: "https://mandala.example/view",
	})

	md := gen.GenerateContractMetadata()

	assert.Equal(t, "Portfolio Mandala", md.Name)
	assert.Equal(t, "https://mandala.example/api/image", md.Image)
	assert.Equal(t, "https://mandala.example/view", md.ExternalURL)
	assert.NotEmpty(t, md.Description)
}
