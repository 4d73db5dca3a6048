package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"PortfolioMandala/internal/api"
	"PortfolioMandala/internal/config"
	"PortfolioMandala/internal/listener"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logrusLogger := logrus.New()
	logrusLogger.SetLevel(logrus.InfoLevel)
	logrusLogger.Info("配置文件加载成功")

	// 3. 配置Gin运行模式（从配置读取：debug/release）
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// 跨域：前端页面与钱包插件直接调用本服务
	r.Use(cors.Default())

	// 注册ppof 方便调试和监测性能问题
	pprof.Register(r)
	logrusLogger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 4. 注册API路由（传入全局配置）
	mandalaHandler := api.NewMandalaHandler(cfg, logrusLogger)
	r.GET("/api/mandala/:address", mandalaHandler.GetMandala)

	// 铸造事件观察器（需配置 websocket RPC，未配置则仅记日志后空转）
	mintWatcher := listener.NewMintWatcher(&cfg.NFT, logrusLogger)
	if cfg.NFT.WSRPCURL != "" {
		go func() {
			if err := mintWatcher.Run(context.Background()); err != nil {
				logrusLogger.WithError(err).Error("MintWatcher exited")
			}
		}()
	}

	// NFT 铸造与元数据接口（给前端钱包交互用）
	nftHandler := api.NewNFTHandler(cfg, mintWatcher, logrusLogger)
	r.GET("/api/nft/contract-info", nftHandler.GetContractInfo)
	r.GET("/api/nft/mint-status/:address", nftHandler.GetMintStatus)
	r.POST("/api/nft/prepare-mint", nftHandler.PrepareMint)
	r.POST("/api/nft/transaction-status", nftHandler.GetTransactionStatus)
	r.GET("/api/nft/metadata/:token_id", nftHandler.GetTokenMetadata)
	r.GET("/api/nft/contract-metadata", nftHandler.GetContractMetadata)
	r.GET("/api/nft/recent-mints", nftHandler.GetRecentMints)

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 5. 启动服务（从配置读取端口）
	port := cfg.Server.Port
	logrusLogger.Infof("服务启动成功，端口：%d", port)
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		logrusLogger.Fatalf("启动服务失败: %v", err)
	}
}
