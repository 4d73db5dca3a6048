package api

import (
	"net/http"

	"PortfolioMandala/internal/adapter/polymarket"
	"PortfolioMandala/internal/config"
	"PortfolioMandala/internal/service"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MandalaHandler 组合图案生成接口
type MandalaHandler struct {
	mandalaService *service.MandalaService
	logger         *logrus.Logger
}

// NewMandalaHandler 创建 MandalaHandler（组装分类器/聚合器/渲染器/数据源）
func NewMandalaHandler(cfg *config.Config, logger *logrus.Logger) *MandalaHandler {
	classifier := service.NewClassifier(cfg.Categories)
	portfolioSvc := service.NewPortfolioService(classifier, logger)
	pattern := service.NewPatternGenerator(&cfg.Pattern, cfg.Categories)
	source := polymarket.NewActivityAdapter(&cfg.Polymarket, logger)
	svc := service.NewMandalaService(source, portfolioSvc, pattern, cfg.Polymarket.ActivityLimit, logger)
	return &MandalaHandler{
		mandalaService: svc,
		logger:         logger,
	}
}

// GetMandala 生成交易者组合图案
// @Summary 按交易者地址生成组合图案 SVG 与聚合统计
// @Param address path string true "交易者钱包地址（0x + 40 位十六进制）"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/mandala/{address} [get]
func (h *MandalaHandler) GetMandala(c *gin.Context) {
	address := c.Param("address")
	if !isValidAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid Ethereum address format",
		})
		return
	}

	svg, summary, err := h.mandalaService.GenerateForAddress(c.Request.Context(), address)
	if err != nil {
		// 上游拉取失败显式报 502，区别于"确实没有交易"（后者正常返回占位图）
		h.logger.WithError(err).WithField("trader", address).Error("GenerateForAddress failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"svg":       svg,
		"portfolio": summary,
	})
}

// isValidAddress 校验 EVM 地址格式（0x 前缀 + 40 位十六进制）
func isValidAddress(address string) bool {
	return len(address) == 42 && address[:2] == "0x" && common.IsHexAddress(address)
}
