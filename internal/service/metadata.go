package service

import (
	"fmt"
	"math"
	"strings"

	"PortfolioMandala/internal/config"
	"PortfolioMandala/internal/model"
)

// MetadataGenerator NFT 属性生成器：由 PortfolioSummary 派生交易市场
// （OpenSea 兼容）的描述性属性，全部为纯函数计算
type MetadataGenerator struct {
	cfg *config.NFTConfig
}

// NewMetadataGenerator 创建属性生成器
func NewMetadataGenerator(cfg *config.NFTConfig) *MetadataGenerator {
	return &MetadataGenerator{cfg: cfg}
}

// GenerateTokenMetadata 生成单个 token 的元数据文档
func (m *MetadataGenerator) GenerateTokenMetadata(tokenID uint64, portfolio *model.PortfolioSummary, traderAddress string) *model.TokenMetadata {
	attributes := []model.Attribute{
		{TraitType: "Token ID", Value: tokenID},
		{TraitType: "Collection", Value: "Portfolio Mandala"},
		{TraitType: "Trader", Value: traderAddress},
		{TraitType: "Volume Tier", Value: volumeTier(portfolio.TotalVolume)},
		{TraitType: "Activity Level", Value: activityLevel(portfolio.TradeCount)},
		{TraitType: "Portfolio Diversity", Value: diversityLabel(portfolio.CategoryPercentages)},
		{TraitType: "Pattern Type", Value: patternType(portfolio.CategoriesTraded)},
		{TraitType: "Rarity Score", Value: math.Round(rarityScore(portfolio)*10) / 10, DisplayType: "number"},
		{TraitType: "Total Volume (USD)", Value: math.Round(portfolio.TotalVolume), DisplayType: "number"},
		{TraitType: "Trade Count", Value: portfolio.TradeCount, DisplayType: "number"},
		{TraitType: "Categories Traded", Value: portfolio.CategoriesTraded, DisplayType: "number"},
	}

	if dominant, pct, ok := dominantCategory(portfolio.CategoryPercentages); ok {
		attributes = append(attributes,
			model.Attribute{TraitType: "Dominant Category", Value: titleCase(dominant)},
			model.Attribute{TraitType: "Dominant Category Percentage", Value: math.Round(pct*10) / 10, DisplayType: "number"},
		)
	}

	// 仅占比超过 5% 的类别作为独立属性输出
	for _, share := range portfolio.SortedCategories() {
		if share.Percentage <= 5 {
			continue
		}
		attributes = append(attributes, model.Attribute{
			TraitType:   titleCase(share.Name) + " %",
			Value:       math.Round(share.Percentage*10) / 10,
			DisplayType: "number",
		})
	}

	return &model.TokenMetadata{
		Name:        fmt.Sprintf("Portfolio Mandala #%d", tokenID),
		Description: "A unique portfolio mandala NFT representing trading patterns on Polymarket",
		Image:       fmt.Sprintf("%s/%d", strings.TrimSuffix(m.cfg.ImageBaseURL, "/"), tokenID),
		ExternalURL: fmt.Sprintf("%s/%d", strings.TrimSuffix(m.cfg.ExternalBaseURL, "/"), tokenID),
		Attributes:  attributes,
	}
}

// GenerateContractMetadata 生成合集级元数据文档
func (m *MetadataGenerator) GenerateContractMetadata() *model.ContractMetadata {
	return &model.ContractMetadata{
		Name:        "Portfolio Mandala",
		Description: "Generative mandala NFTs derived from Polymarket trading portfolios",
		Image:       m.cfg.ImageBaseURL,
		ExternalURL: m.cfg.ExternalBaseURL,
	}
}

// volumeTier 成交额六档阶梯（USD）。仅 Casual 档上界取闭区间
// （累计 $1,000 仍属 Casual Trader），其余档位上界开区间
func volumeTier(totalVolume float64) string {
	switch {
	case totalVolume < 100:
		return "Beginner"
	case totalVolume <= 1_000:
		return "Casual Trader"
	case totalVolume < 10_000:
		return "Regular Trader"
	case totalVolume < 100_000:
		return "Active Trader"
	case totalVolume < 1_000_000:
		return "High Roller"
	default:
		return "Whale"
	}
}

// activityLevel 交易笔数六档阶梯
func activityLevel(tradeCount int) string {
	switch {
	case tradeCount < 10:
		return "Minimal"
	case tradeCount < 50:
		return "Light"
	case tradeCount < 100:
		return "Moderate"
	case tradeCount < 500:
		return "Active"
	case tradeCount < 1_000:
		return "Very Active"
	default:
		return "Hyperactive"
	}
}

// herfindahlIndex HHI = Σ(占比/100)²，衡量组合集中度
func herfindahlIndex(percentages map[string]float64) float64 {
	hhi := 0.0
	for _, pct := range percentages {
		share := pct / 100
		hhi += share * share
	}
	return hhi
}

// diversityLabel 由 HHI 派生多样性标签；无类别数据时为 None
func diversityLabel(percentages map[string]float64) string {
	if len(percentages) == 0 {
		return "None"
	}
	hhi := herfindahlIndex(percentages)
	switch {
	case hhi >= 0.8:
		return "Focused"
	case hhi >= 0.5:
		return "Moderate"
	case hhi >= 0.3:
		return "Diversified"
	default:
		return "Highly Diversified"
	}
}

// dominantCategory 返回占比最高的类别；无数据时 ok=false
func dominantCategory(percentages map[string]float64) (name string, pct float64, ok bool) {
	shares := (&model.PortfolioSummary{CategoryPercentages: percentages}).SortedCategories()
	if len(shares) == 0 {
		return "", 0, false
	}
	return shares[0].Name, shares[0].Percentage, true
}

// patternType 与渲染器布局策略一一对应的图案标签
func patternType(categoriesTraded int) string {
	switch categoriesTraded {
	case 0:
		return "Awaiting Data"
	case 1:
		return "Spiral Flow"
	case 2:
		return "Dual Flow"
	case 3:
		return "Trinity Flow"
	default:
		return "Network Flow"
	}
}

// rarityScore 稀有度 [0,100]：成交额（上限30）+ 活跃度（上限25）+
// 多样性（上限20）+ 均衡度（满分25，按偏离均分的方差扣减）
func rarityScore(portfolio *model.PortfolioSummary) float64 {
	volumeComponent := portfolio.TotalVolume / 10_000
	if volumeComponent > 30 {
		volumeComponent = 30
	}

	activityComponent := float64(portfolio.TradeCount) / 20
	if activityComponent > 25 {
		activityComponent = 25
	}

	diversityComponent := float64(portfolio.CategoriesTraded) * 4
	if diversityComponent > 20 {
		diversityComponent = 20
	}

	balanceComponent := 0.0
	if n := len(portfolio.CategoryPercentages); n > 0 {
		equalShare := 100 / float64(n)
		variance := 0.0
		for _, pct := range portfolio.CategoryPercentages {
			diff := pct - equalShare
			variance += diff * diff
		}
		variance /= float64(n)
		balanceComponent = 25 - variance/100
		if balanceComponent < 0 {
			balanceComponent = 0
		}
	}

	score := volumeComponent + activityComponent + diversityComponent + balanceComponent
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// titleCase 类别名首字母大写（politics -> Politics）
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
