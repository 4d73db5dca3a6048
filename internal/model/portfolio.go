package model

import "sort"

// TradeActivity Data API 返回的单条交易记录（type=TRADE）
type TradeActivity struct {
	Title           string  `json:"title"`           // 市场标题
	Slug            string  `json:"slug"`            // 市场 slug
	EventSlug       string  `json:"eventSlug"`       // 所属事件 slug
	ConditionID     string  `json:"conditionId"`     // 市场条件 ID
	Type            string  `json:"type"`            // 记录类型：TRADE/SPLIT/MERGE 等
	UsdcSize        float64 `json:"usdcSize"`        // 成交金额（USDC）
	Timestamp       int64   `json:"timestamp"`       // 成交时间（Unix 秒）
	Side            string  `json:"side"`            // BUY/SELL
	Outcome         string  `json:"outcome"`         // 下注结果选项
	TransactionHash string  `json:"transactionHash"` // 链上交易哈希
}

// ActivityTypeTrade Data API 的交易类型过滤值
const ActivityTypeTrade = "TRADE"

// MarketSummary 单个市场的累计统计，仅保留在 top_markets 列表中
type MarketSummary struct {
	Question   string  `json:"question"`
	Slug       string  `json:"slug"`
	Volume     float64 `json:"volume"`
	TradeCount int     `json:"trade_count"`
}

// PortfolioSummary 交易者的聚合统计视图。每次请求新建，构建完成后不再修改
type PortfolioSummary struct {
	TraderAddress       string             `json:"trader_address"`
	TotalVolume         float64            `json:"total_volume"`
	CategoryVolumes     map[string]float64 `json:"category_volumes"`
	CategoryPercentages map[string]float64 `json:"category_percentages"`
	TradeCount          int                `json:"trade_count"`
	CategoriesTraded    int                `json:"categories_traded"`
	TopMarkets          []MarketSummary    `json:"top_markets"`
}

// CategoryShare 类别及其成交占比，用于需要确定顺序的消费方（渲染、属性生成）
type CategoryShare struct {
	Name       string
	Percentage float64
}

// SortedCategories 按占比降序返回类别列表。占比相同时按类别名稳定排序，
// 保证同一份 summary 多次调用产出相同顺序（渲染确定性依赖于此）
func (p *PortfolioSummary) SortedCategories() []CategoryShare {
	shares := make([]CategoryShare, 0, len(p.CategoryPercentages))
	for name, pct := range p.CategoryPercentages {
		shares = append(shares, CategoryShare{Name: name, Percentage: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Percentage != shares[j].Percentage {
			return shares[i].Percentage > shares[j].Percentage
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}

// EmptyPortfolioSummary 无交易数据时的零值 summary
func EmptyPortfolioSummary(traderAddress string) *PortfolioSummary {
	return &PortfolioSummary{
		TraderAddress:       traderAddress,
		CategoryVolumes:     map[string]float64{},
		CategoryPercentages: map[string]float64{},
		TopMarkets:          []MarketSummary{},
	}
}
