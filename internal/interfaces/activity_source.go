package interfaces

import (
	"context"

	"PortfolioMandala/internal/model"
)

// ActivitySource 交易活动数据源接口。实现方负责网络请求与重试，
// 核心聚合逻辑只消费已取回的内存数据
type ActivitySource interface {
	GetName() string                                                                             // 数据源名称
	FetchUserActivity(ctx context.Context, user string, limit int) ([]*model.TradeActivity, error) // 拉取交易活动（服务端已按 type=TRADE 过滤、时间倒序）
}
