package service

import (
	"context"
	"fmt"

	"PortfolioMandala/internal/interfaces"
	"PortfolioMandala/internal/model"

	"github.com/sirupsen/logrus"
)

// MandalaService 编排服务：拉取活动 → 聚合 → 渲染。
// 上游拉取失败显式返回错误（区别于"确实没有交易"——后者走占位图）
type MandalaService struct {
	source    interfaces.ActivitySource
	portfolio *PortfolioService
	pattern   *PatternGenerator
	limit     int
	logger    *logrus.Logger
}

// NewMandalaService 创建编排服务
func NewMandalaService(source interfaces.ActivitySource, portfolio *PortfolioService, pattern *PatternGenerator, limit int, logger *logrus.Logger) *MandalaService {
	return &MandalaService{
		source:    source,
		portfolio: portfolio,
		pattern:   pattern,
		limit:     limit,
		logger:    logger,
	}
}

// AnalyzePortfolio 拉取并聚合一名交易者的组合统计
func (s *MandalaService) AnalyzePortfolio(ctx context.Context, traderAddress string) (*model.PortfolioSummary, error) {
	activities, err := s.source.FetchUserActivity(ctx, traderAddress, s.limit)
	if err != nil {
		return nil, fmt.Errorf("拉取%s交易活动失败: %w", s.source.GetName(), err)
	}
	return s.portfolio.Aggregate(traderAddress, activities), nil
}

// GenerateForAddress 生成组合图案 SVG 与聚合统计
func (s *MandalaService) GenerateForAddress(ctx context.Context, traderAddress string) (svg string, summary *model.PortfolioSummary, err error) {
	summary, err = s.AnalyzePortfolio(ctx, traderAddress)
	if err != nil {
		return "", nil, err
	}
	s.logger.WithField("trader", traderAddress).
		WithField("total_volume", summary.TotalVolume).
		WithField("trade_count", summary.TradeCount).
		Info("组合聚合完成")
	return s.pattern.Generate(summary), summary, nil
}
