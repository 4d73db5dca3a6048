package config

import (
	"fmt"
	"os"

	"PortfolioMandala/internal/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（匹配 config/config.yaml）
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`     // 服务器配置
	Polymarket PolymarketConfig `mapstructure:"polymarket"` // Polymarket Data API 配置
	NFT        NFTConfig        `mapstructure:"nft"`        // NFT 合约与链配置
	Pattern    PatternConfig    `mapstructure:"pattern"`    // 图案渲染配置
	Categories []model.Category `mapstructure:"categories"` // 类别表（留空则用内置默认表）
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PolymarketConfig Polymarket Data API 配置
type PolymarketConfig struct {
	DataAPIURL    string `mapstructure:"data_api_url"`   // Data API 基础地址
	Timeout       int    `mapstructure:"timeout"`        // 请求超时（秒）
	ActivityLimit int    `mapstructure:"activity_limit"` // 单次拉取的最大活动记录数
	Proxy         string `mapstructure:"proxy"`          // 代理地址
}

// NFTConfig NFT 合约与链配置
type NFTConfig struct {
	RPCURL          string `mapstructure:"rpc_url"`           // EVM RPC 地址
	WSRPCURL        string `mapstructure:"ws_rpc_url"`        // EVM websocket RPC 地址（铸造事件订阅用，可留空）
	ContractAddress string `mapstructure:"contract_address"`  // PortfolioMandala 合约地址
	ChainID         int64  `mapstructure:"chain_id"`          // 链 ID（Polygon Amoy=80002）
	ExplorerURL     string `mapstructure:"explorer_url"`      // 区块浏览器基础地址
	ABIPath         string `mapstructure:"abi_path"`          // 合约 artifact JSON 路径（可选）
	ImageBaseURL    string `mapstructure:"image_base_url"`    // 元数据 image 字段基础地址
	ExternalBaseURL string `mapstructure:"external_base_url"` // 元数据 external_url 字段基础地址
}

// PatternConfig 图案渲染配置
type PatternConfig struct {
	Width       int   `mapstructure:"width"`        // 画布宽度
	Height      int   `mapstructure:"height"`       // 画布高度
	AmbientSeed int64 `mapstructure:"ambient_seed"` // 环境粒子固定随机种子（保证同输入渲染可复现）
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	OverrideFromEnv(&cfg)
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// OverrideFromEnv 用环境变量覆盖敏感配置
func OverrideFromEnv(cfg *Config) {
	if v := os.Getenv("CONTRACT_ADDRESS"); v != "" {
		cfg.NFT.ContractAddress = v
	}
	if v := os.Getenv("RPC_URL"); v != "" {
		cfg.NFT.RPCURL = v
	}
	if v := os.Getenv("POLYMARKET_PROXY"); v != "" {
		cfg.Polymarket.Proxy = v
	}
}

// ApplyDefaults 补齐未配置项。类别表、画布尺寸、随机种子等在进程启动时
// 固定下来，此后只读（组件不做任何运行期全局查表）
func ApplyDefaults(cfg *Config) {
	if cfg.Polymarket.DataAPIURL == "" {
		cfg.Polymarket.DataAPIURL = "https://data-api.polymarket.com"
	}
	if cfg.Polymarket.Timeout <= 0 {
		cfg.Polymarket.Timeout = 10
	}
	if cfg.Polymarket.ActivityLimit <= 0 {
		cfg.Polymarket.ActivityLimit = 1000
	}
	if cfg.Pattern.Width <= 0 {
		cfg.Pattern.Width = 500
	}
	if cfg.Pattern.Height <= 0 {
		cfg.Pattern.Height = 500
	}
	if cfg.Pattern.AmbientSeed == 0 {
		cfg.Pattern.AmbientSeed = 42
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = model.DefaultCategories
	}
}
