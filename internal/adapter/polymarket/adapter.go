package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"PortfolioMandala/internal/config"
	"PortfolioMandala/internal/interfaces"
	"PortfolioMandala/internal/model"
	"PortfolioMandala/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// Ensure Adapter implements interfaces.ActivitySource
var _ interfaces.ActivitySource = (*Adapter)(nil)

// Adapter Polymarket Data API 适配器，拉取用户交易活动（data-api.polymarket.com/activity）
type Adapter struct {
	cfg        *config.PolymarketConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewActivityAdapter 创建 Data API 活动数据源
func NewActivityAdapter(cfg *config.PolymarketConfig, logger *logrus.Logger) *Adapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现ActivitySource接口 ==========
func (a *Adapter) GetName() string {
	return "Polymarket"
}

// FetchUserActivity 拉取用户交易活动。服务端按 type=TRADE 过滤、时间倒序返回；
// 本地再做一次类型过滤兜底（上游偶发混入非交易记录）
func (a *Adapter) FetchUserActivity(ctx context.Context, user string, limit int) ([]*model.TradeActivity, error) {
	if limit <= 0 {
		limit = a.cfg.ActivityLimit
	}

	q := url.Values{}
	q.Set("user", user)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sortDirection", "DESC")
	q.Set("type", model.ActivityTypeTrade)
	activityURL := fmt.Sprintf("%s/activity?%s", a.cfg.DataAPIURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, activityURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构建活动请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("拉取用户活动失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("Data API 返回 %d: %s", resp.StatusCode, string(body))
	}

	var activities []*model.TradeActivity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("解析活动响应失败: %w", err)
	}

	trades := make([]*model.TradeActivity, 0, len(activities))
	for _, act := range activities {
		if act == nil || act.Type != model.ActivityTypeTrade {
			continue
		}
		trades = append(trades, act)
	}
	a.logger.WithField("user", user).WithField("trades", len(trades)).Info("用户活动拉取完成")
	return trades, nil
}
