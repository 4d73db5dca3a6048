package listener

import (
	"context"
	"math/big"
	"sync"
	"time"

	"PortfolioMandala/internal/config"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
)

// recentMintCap 内存中保留的最近铸造事件条数
const recentMintCap = 50

// Transfer(address indexed from, address indexed to, uint256 indexed tokenId)
var sigTransfer = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// MintEvent 观察到的一次铸造
type MintEvent struct {
	Trader      string    `json:"trader"`       // 铸造者地址（Transfer 的 to）
	TokenID     uint64    `json:"token_id"`     // token id
	TxHash      string    `json:"tx_hash"`      // 交易哈希
	BlockNumber uint64    `json:"block_number"` // 所在区块
	SeenAt      time.Time `json:"seen_at"`      // 本服务观察到的时间
}

// MintWatcher 订阅 PortfolioMandala 合约的 Transfer 事件（from 为零地址即铸造），
// 结构化记日志并在内存中保留最近若干条，供 /api/nft/recent-mints 查询
type MintWatcher struct {
	cfg    *config.NFTConfig
	logger *logrus.Logger

	mu     sync.RWMutex
	recent []MintEvent // 最新在前
}

// NewMintWatcher 创建铸造事件观察器
func NewMintWatcher(cfg *config.NFTConfig, logger *logrus.Logger) *MintWatcher {
	return &MintWatcher{cfg: cfg, logger: logger}
}

// Recent 返回最近观察到的铸造事件（最新在前，副本）
func (w *MintWatcher) Recent() []MintEvent {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]MintEvent, len(w.recent))
	copy(out, w.recent)
	return out
}

// Run 在后台订阅铸造事件，直到 ctx 取消。ws_rpc_url 未配置时直接等待退出
func (w *MintWatcher) Run(ctx context.Context) error {
	if w.cfg.WSRPCURL == "" || w.cfg.ContractAddress == "" {
		w.logger.Info("MintWatcher: ws_rpc_url 或 contract_address 未配置，跳过订阅")
		<-ctx.Done()
		return nil
	}

	client, err := ethclient.DialContext(ctx, w.cfg.WSRPCURL)
	if err != nil {
		return err
	}
	defer client.Close()

	contractAddr := common.HexToAddress(w.cfg.ContractAddress)
	query := ethereum.FilterQuery{
		Addresses: []common.Address{contractAddr},
		Topics:    [][]common.Hash{{sigTransfer}},
	}
	ch := make(chan types.Log)
	sub, err := client.SubscribeFilterLogs(ctx, query, ch)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()
	w.logger.WithField("contract", w.cfg.ContractAddress).Info("MintWatcher started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-sub.Err():
			w.logger.WithError(err).Error("MintWatcher subscription error")
			return err
		case vLog := <-ch:
			w.handleLog(vLog)
		}
	}
}

// handleLog 过滤出铸造（from 为零地址）的 Transfer 事件并入队
func (w *MintWatcher) handleLog(vLog types.Log) {
	if len(vLog.Topics) != 4 || vLog.Topics[0] != sigTransfer {
		return
	}
	if vLog.Topics[1] != (common.Hash{}) {
		return // 普通转移，不是铸造
	}
	ev := MintEvent{
		Trader:      common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
		TokenID:     new(big.Int).SetBytes(vLog.Topics[3].Bytes()).Uint64(),
		TxHash:      vLog.TxHash.Hex(),
		BlockNumber: vLog.BlockNumber,
		SeenAt:      time.Now().UTC(),
	}
	w.logger.WithField("trader", ev.Trader).
		WithField("token_id", ev.TokenID).
		WithField("tx_hash", ev.TxHash).
		Info("观察到新的组合图案铸造")
	w.record(ev)
}

// record 头插入队并裁剪到容量上限
func (w *MintWatcher) record(ev MintEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.recent = append([]MintEvent{ev}, w.recent...)
	if len(w.recent) > recentMintCap {
		w.recent = w.recent[:recentMintCap]
	}
}
