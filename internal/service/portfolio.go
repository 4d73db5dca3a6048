package service

import (
	"sort"

	"PortfolioMandala/internal/model"

	"github.com/sirupsen/logrus"
)

// topMarketLimit top_markets 列表截断长度
const topMarketLimit = 10

// PortfolioService 交易活动聚合服务：逐条分类、按类别/市场累计成交额，
// 产出 PortfolioSummary。纯内存计算，无内部并发与 I/O
type PortfolioService struct {
	classifier *Classifier
	logger     *logrus.Logger
}

// NewPortfolioService 创建聚合服务
func NewPortfolioService(classifier *Classifier, logger *logrus.Logger) *PortfolioService {
	return &PortfolioService{
		classifier: classifier,
		logger:     logger,
	}
}

// Aggregate 聚合一名交易者的活动记录。空输入返回零值 summary，不报错。
// 不变量：CategoryVolumes 各项之和 == TotalVolume；TotalVolume>0 时
// CategoryPercentages 各项之和 == 100，否则百分比表为空
func (s *PortfolioService) Aggregate(traderAddress string, activities []*model.TradeActivity) *model.PortfolioSummary {
	if len(activities) == 0 {
		return model.EmptyPortfolioSummary(traderAddress)
	}

	categoryVolumes := make(map[string]float64)
	marketVolumes := make(map[string]float64)
	marketTradeCounts := make(map[string]int)
	marketQuestions := make(map[string]string)
	var marketOrder []string // 市场首次出现顺序，保证排序并列时结果稳定
	totalVolume := 0.0
	tradeCount := 0

	for _, act := range activities {
		if act.Type != model.ActivityTypeTrade {
			continue
		}
		tradeCount++

		category := s.classifier.CategorizeActivity(act)
		categoryVolumes[category] += act.UsdcSize
		totalVolume += act.UsdcSize

		marketID := act.Slug
		if marketID == "" {
			marketID = act.ConditionID
		}
		if _, seen := marketVolumes[marketID]; !seen {
			marketOrder = append(marketOrder, marketID)
		}
		marketVolumes[marketID] += act.UsdcSize
		marketTradeCounts[marketID]++
		if act.Title != "" {
			marketQuestions[marketID] = act.Title
		}
	}

	if tradeCount == 0 {
		return model.EmptyPortfolioSummary(traderAddress)
	}

	// 百分比：总量为 0 时留空，避免除零
	categoryPercentages := make(map[string]float64)
	if totalVolume > 0 {
		for category, volume := range categoryVolumes {
			categoryPercentages[category] = volume / totalVolume * 100
		}
	}

	// top_markets：按累计成交额降序、并列按首次出现顺序，剔除零额市场，截断前 10
	sortedMarkets := make([]string, len(marketOrder))
	copy(sortedMarkets, marketOrder)
	sort.SliceStable(sortedMarkets, func(i, j int) bool {
		return marketVolumes[sortedMarkets[i]] > marketVolumes[sortedMarkets[j]]
	})

	topMarkets := make([]model.MarketSummary, 0, topMarketLimit)
	for _, marketID := range sortedMarkets {
		if len(topMarkets) >= topMarketLimit {
			break
		}
		if marketVolumes[marketID] <= 0 {
			continue
		}
		question := marketQuestions[marketID]
		if question == "" {
			question = "Unknown Market"
		}
		topMarkets = append(topMarkets, model.MarketSummary{
			Question:   question,
			Slug:       marketID,
			Volume:     marketVolumes[marketID],
			TradeCount: marketTradeCounts[marketID],
		})
	}

	return &model.PortfolioSummary{
		TraderAddress:       traderAddress,
		TotalVolume:         totalVolume,
		CategoryVolumes:     categoryVolumes,
		CategoryPercentages: categoryPercentages,
		TradeCount:          tradeCount,
		CategoriesTraded:    len(categoryVolumes),
		TopMarkets:          topMarkets,
	}
}
