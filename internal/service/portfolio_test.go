package service

import (
	"fmt"
	"testing"

	"PortfolioMandala/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPortfolioService() *PortfolioService {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewPortfolioService(newTestClassifier(), logger)
}

func trade(title, slug string, usdc float64) *model.TradeActivity {
	return &model.TradeActivity{
		Title:    title,
		Slug:     slug,
		Type:     model.ActivityTypeTrade,
		UsdcSize: usdc,
	}
}

func TestAggregateSingleCryptoMarket(t *testing.T) {
	svc := newTestPortfolioService()
	activities := []*model.TradeActivity{
		trade("Will Bitcoin hit $100k?", "bitcoin-100k", 100),
		trade("Will Bitcoin hit $100k?", "bitcoin-100k", 200),
		trade("Will Bitcoin hit $100k?", "bitcoin-100k", 700),
	}

	summary := svc.Aggregate("0xabc", activities)

	assert.Equal(t, "0xabc", summary.TraderAddress)
	assert.InDelta(t, 1000, summary.TotalVolume, 1e-9)
	assert.Equal(t, 3, summary.TradeCount)
	assert.Equal(t, 1, summary.CategoriesTraded)
	assert.InDelta(t, 1000, summary.CategoryVolumes["crypto"], 1e-9)
	assert.InDelta(t, 100, summary.CategoryPercentages["crypto"], 1e-9)

	require.Len(t, summary.TopMarkets, 1)
	assert.Equal(t, "Will Bitcoin hit $100k?", summary.TopMarkets[0].Question)
	assert.Equal(t, "bitcoin-100k", summary.TopMarkets[0].Slug)
	assert.InDelta(t, 1000, summary.TopMarkets[0].Volume, 1e-9)
	assert.Equal(t, 3, summary.TopMarkets[0].TradeCount)
}

func TestAggregateInvariants(t *testing.T) {
	svc := newTestPortfolioService()
	activities := []*model.TradeActivity{
		trade("Will Bitcoin hit $100k?", "bitcoin-100k", 120.5),
		trade("Presidential election winner", "presidential-election", 300.25),
		trade("NBA Finals champion", "nba-finals", 79.25),
		trade("Moon landing hoax?", "moon-landing-hoax", 50),
	}

	summary := svc.Aggregate("0xabc", activities)

	volumeSum := 0.0
	for _, v := range summary.CategoryVolumes {
		volumeSum += v
	}
	assert.InDelta(t, summary.TotalVolume, volumeSum, 1e-6)

	pctSum := 0.0
	for _, p := range summary.CategoryPercentages {
		pctSum += p
	}
	assert.InDelta(t, 100, pctSum, 1e-6)
	assert.Equal(t, 4, summary.CategoriesTraded)
	assert.Contains(t, summary.CategoryVolumes, model.CategoryOther)
}

func TestAggregateEmptyInput(t *testing.T) {
	svc := newTestPortfolioService()

	summary := svc.Aggregate("0xabc", nil)

	assert.Equal(t, "0xabc", summary.TraderAddress)
	assert.Zero(t, summary.TotalVolume)
	assert.Zero(t, summary.TradeCount)
	assert.Empty(t, summary.CategoryVolumes)
	assert.Empty(t, summary.CategoryPercentages)
	assert.Empty(t, summary.TopMarkets)
}

func TestAggregateSkipsNonTradeRecords(t *testing.T) {
	svc := newTestPortfolioService()
	activities := []*model.TradeActivity{
		{Title: "Will Bitcoin hit $100k?", Slug: "bitcoin-100k", Type: "SPLIT", UsdcSize: 999},
		trade("Will Bitcoin hit $100k?", "bitcoin-100k", 100),
	}

	summary := svc.Aggregate("0xabc", activities)

	assert.Equal(t, 1, summary.TradeCount)
	assert.InDelta(t, 100, summary.TotalVolume, 1e-9)
}

func TestAggregateTopMarketsBoundAndOrder(t *testing.T) {
	svc := newTestPortfolioService()
	var activities []*model.TradeActivity
	for i := 0; i < 12; i++ {
		slug := fmt.Sprintf("bitcoin-market-%d", i)
		activities = append(activities, trade("Bitcoin market", slug, float64((i+1)*10)))
	}
	// 零额市场不进 top_markets
	activities = append(activities, trade("Bitcoin market", "bitcoin-market-zero", 0))

	summary := svc.Aggregate("0xabc", activities)

	require.Len(t, summary.TopMarkets, 10)
	for i := 1; i < len(summary.TopMarkets); i++ {
		assert.GreaterOrEqual(t, summary.TopMarkets[i-1].Volume, summary.TopMarkets[i].Volume)
	}
	assert.InDelta(t, 120, summary.TopMarkets[0].Volume, 1e-9)
	for _, m := range summary.TopMarkets {
		assert.NotEqual(t, "bitcoin-market-zero", m.Slug)
	}
}

func TestAggregateMarketIDFallsBackToConditionID(t *testing.T) {
	svc := newTestPortfolioService()
	activities := []*model.TradeActivity{
		{ConditionID: "0xc0ffee", Type: model.ActivityTypeTrade, UsdcSize: 42},
	}

	summary := svc.Aggregate("0xabc", activities)

	require.Len(t, summary.TopMarkets, 1)
	assert.Equal(t, "0xc0ffee", summary.TopMarkets[0].Slug)
	assert.Equal(t, "Unknown Market", summary.TopMarkets[0].Question)
}

func TestSortedCategoriesStableOrder(t *testing.T) {
	summary := &model.PortfolioSummary{
		CategoryPercentages: map[string]float64{
			"sports": 25, "crypto": 25, "politics": 50,
		},
	}

	shares := summary.SortedCategories()

	require.Len(t, shares, 3)
	assert.Equal(t, "politics", shares[0].Name)
	// 占比并列按名称排序
	assert.Equal(t, "crypto", shares[1].Name)
	assert.Equal(t, "sports", shares[2].Name)
}
