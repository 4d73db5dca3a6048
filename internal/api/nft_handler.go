package api

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"strconv"

	"PortfolioMandala/internal/adapter/polymarket"
	"PortfolioMandala/internal/chain"
	"PortfolioMandala/internal/config"
	"PortfolioMandala/internal/listener"
	"PortfolioMandala/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NFTHandler NFT 铸造与元数据接口
type NFTHandler struct {
	cfg            *config.NFTConfig
	mandalaService *service.MandalaService
	metadata       *service.MetadataGenerator
	watcher        *listener.MintWatcher // 可为 nil（未开启链上订阅）
	logger         *logrus.Logger
}

// NewNFTHandler 创建 NFTHandler（元数据接口复用图案服务按 token 持有人重算组合）
func NewNFTHandler(cfg *config.Config, watcher *listener.MintWatcher, logger *logrus.Logger) *NFTHandler {
	classifier := service.NewClassifier(cfg.Categories)
	portfolioSvc := service.NewPortfolioService(classifier, logger)
	pattern := service.NewPatternGenerator(&cfg.Pattern, cfg.Categories)
	source := polymarket.NewActivityAdapter(&cfg.Polymarket, logger)
	svc := service.NewMandalaService(source, portfolioSvc, pattern, cfg.Polymarket.ActivityLimit, logger)
	return &NFTHandler{
		cfg:            &cfg.NFT,
		mandalaService: svc,
		metadata:       service.NewMetadataGenerator(&cfg.NFT),
		watcher:        watcher,
		logger:         logger,
	}
}

// contractArtifact 合约 artifact JSON（只取 ABI 字段）
type contractArtifact struct {
	ABI json.RawMessage `json:"abi"`
}

// GetContractInfo 返回合约地址、链信息与 ABI，前端据此初始化钱包交互
// @Router /api/nft/contract-info [get]
func (h *NFTHandler) GetContractInfo(c *gin.Context) {
	var abiJSON json.RawMessage
	if h.cfg.ABIPath != "" {
		data, err := os.ReadFile(h.cfg.ABIPath)
		if err != nil {
			h.logger.WithError(err).Warn("读取合约 artifact 失败，ABI 字段返回空")
		} else {
			var artifact contractArtifact
			if err := json.Unmarshal(data, &artifact); err != nil {
				h.logger.WithError(err).Warn("解析合约 artifact 失败，ABI 字段返回空")
			} else {
				abiJSON = artifact.ABI
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"contract": gin.H{
			"address":      h.cfg.ContractAddress,
			"chain_id":     h.cfg.ChainID,
			"explorer_url": h.cfg.ExplorerURL,
			"abi":          abiJSON,
		},
	})
}

// GetMintStatus 查询交易者铸造状态：已铸造返回 token id，未铸造附带 Gas 估算
// @Router /api/nft/mint-status/{address} [get]
func (h *NFTHandler) GetMintStatus(c *gin.Context) {
	address := c.Param("address")
	if !isValidAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid Ethereum address format",
		})
		return
	}

	ctx := c.Request.Context()
	minted, err := chain.HasMinted(ctx, h.cfg.RPCURL, h.cfg.ContractAddress, address)
	if err != nil {
		h.logger.WithError(err).WithField("trader", address).Error("查询铸造状态失败")
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	resp := gin.H{
		"success":    true,
		"has_minted": minted,
		"can_mint":   !minted,
	}
	if minted {
		tokenID, err := chain.TraderTokenID(ctx, h.cfg.RPCURL, h.cfg.ContractAddress, address)
		if err != nil {
			h.logger.WithError(err).WithField("trader", address).Error("查询 token id 失败")
			c.JSON(http.StatusBadGateway, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		resp["token_id"] = tokenID.Uint64()
	} else {
		if gas, err := chain.EstimateMintGas(ctx, h.cfg.RPCURL, h.cfg.ContractAddress, address); err == nil {
			resp["estimated_gas"] = gas
			resp["estimated_cost"] = formatGasCost(gas)
		} else {
			// 估算失败不阻塞查询，前端可在提交时再估
			h.logger.WithError(err).WithField("trader", address).Warn("Gas 估算失败")
		}
	}
	c.JSON(http.StatusOK, resp)
}

// prepareMintRequest 铸造准备请求体
type prepareMintRequest struct {
	TraderAddress string `json:"trader_address" binding:"required"`
}

// PrepareMint 准备铸造交易：校验未重复铸造，打包 calldata 供前端钱包签名发送
// @Router /api/nft/prepare-mint [post]
func (h *NFTHandler) PrepareMint(c *gin.Context) {
	var req prepareMintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "trader_address is required",
		})
		return
	}
	if !isValidAddress(req.TraderAddress) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid Ethereum address format",
		})
		return
	}

	ctx := c.Request.Context()
	minted, err := chain.HasMinted(ctx, h.cfg.RPCURL, h.cfg.ContractAddress, req.TraderAddress)
	if err != nil {
		h.logger.WithError(err).WithField("trader", req.TraderAddress).Error("查询铸造状态失败")
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if minted {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Address has already minted a mandala",
		})
		return
	}

	calldata, err := chain.MintCalldata()
	if err != nil {
		h.logger.WithError(err).Error("打包铸造 calldata 失败")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	gas, err := chain.EstimateMintGas(ctx, h.cfg.RPCURL, h.cfg.ContractAddress, req.TraderAddress)
	if err != nil {
		h.logger.WithError(err).WithField("trader", req.TraderAddress).Warn("Gas 估算失败，使用保守默认值")
		gas = 500000
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"request_id": uuid.New().String(),
		"transaction": gin.H{
			"to":       h.cfg.ContractAddress,
			"data":     "0x" + hex.EncodeToString(calldata),
			"value":    "0x0",
			"gas":      gas,
			"chain_id": h.cfg.ChainID,
		},
		"estimated_cost": formatGasCost(gas),
	})
}

// transactionStatusRequest 交易状态查询请求体
type transactionStatusRequest struct {
	TxHash string `json:"tx_hash" binding:"required"`
}

// GetTransactionStatus 查询铸造交易状态：pending / confirmed / failed
// @Router /api/nft/transaction-status [post]
func (h *NFTHandler) GetTransactionStatus(c *gin.Context) {
	var req transactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "tx_hash is required",
		})
		return
	}

	status, err := chain.GetTransactionStatus(c.Request.Context(), h.cfg.RPCURL, req.TxHash)
	if err != nil {
		h.logger.WithError(err).WithField("tx", req.TxHash).Error("查询交易状态失败")
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if !status.Found {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  "pending",
			"message": "Transaction not yet mined",
		})
		return
	}
	if !status.Success {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  "failed",
			"error":   "Transaction reverted",
		})
		return
	}

	resp := gin.H{
		"success":          true,
		"status":           "confirmed",
		"transaction_hash": req.TxHash,
		"block_number":     status.BlockNumber,
		"explorer_url":     fmt.Sprintf("%s/tx/%s", h.cfg.ExplorerURL, req.TxHash),
	}
	if status.TokenID != nil {
		resp["token_id"] = status.TokenID.Uint64()
	}
	c.JSON(http.StatusOK, resp)
}

// GetTokenMetadata 按 token id 生成 NFT 元数据：链上反查持有人地址后
// 重新拉取其交易活动实时计算，元数据随组合演进而变化
// @Router /api/nft/metadata/{token_id} [get]
func (h *NFTHandler) GetTokenMetadata(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("token_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid token id",
		})
		return
	}

	ctx := c.Request.Context()
	trader, err := chain.TokenTrader(ctx, h.cfg.RPCURL, h.cfg.ContractAddress, new(big.Int).SetUint64(tokenID))
	if err != nil {
		h.logger.WithError(err).WithField("token_id", tokenID).Error("反查 token 持有人失败")
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   fmt.Sprintf("token %d not found", tokenID),
		})
		return
	}

	portfolio, err := h.mandalaService.AnalyzePortfolio(ctx, trader)
	if err != nil {
		h.logger.WithError(err).WithField("trader", trader).Error("计算组合统计失败")
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.metadata.GenerateTokenMetadata(tokenID, portfolio, trader))
}

// GetContractMetadata 返回集合级元数据（OpenSea contractURI 约定）
// @Router /api/nft/contract-metadata [get]
func (h *NFTHandler) GetContractMetadata(c *gin.Context) {
	c.JSON(http.StatusOK, h.metadata.GenerateContractMetadata())
}

// GetRecentMints 返回观察器记录的最近铸造事件（未开启订阅时为空列表）
// @Router /api/nft/recent-mints [get]
func (h *NFTHandler) GetRecentMints(c *gin.Context) {
	mints := []listener.MintEvent{}
	if h.watcher != nil {
		mints = h.watcher.Recent()
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"mints":   mints,
	})
}

// formatGasCost 格式化 Gas 估算成本（按 20 gwei 报价）
func formatGasCost(gas uint64) string {
	return fmt.Sprintf("~%.6f MATIC", float64(gas)*20*1e-10)
}
