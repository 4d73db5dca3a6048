package listener

import (
	"fmt"
	"math/big"
	"testing"

	"PortfolioMandala/internal/config"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher() *MintWatcher {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewMintWatcher(&config.NFTConfig{}, logger)
}

func mintLog(trader common.Address, tokenID int64, txHash common.Hash) types.Log {
	return types.Log{
		Topics: []common.Hash{
			sigTransfer,
			{}, // from = 零地址即铸造
			common.BytesToHash(trader.Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
		TxHash:      txHash,
		BlockNumber: 123,
	}
}

func TestHandleLogRecordsMint(t *testing.T) {
	w := newTestWatcher()
	trader := common.HexToAddress("0x1234567890abcdef1234567890abcdef12345678")

	w.handleLog(mintLog(trader, 7, common.HexToHash("0xbeef")))

	recent := w.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, trader.Hex(), recent[0].Trader)
	assert.Equal(t, uint64(7), recent[0].TokenID)
	assert.Equal(t, uint64(123), recent[0].BlockNumber)
	assert.False(t, recent[0].SeenAt.IsZero())
}

func TestHandleLogIgnoresPlainTransfers(t *testing.T) {
	w := newTestWatcher()
	lg := mintLog(common.HexToAddress("0x2"), 1, common.Hash{})
	lg.Topics[1] = common.BytesToHash(common.HexToAddress("0x1").Bytes()) // 非零 from

	w.handleLog(lg)

	assert.Empty(t, w.Recent())
}

func TestHandleLogIgnoresOtherEvents(t *testing.T) {
	w := newTestWatcher()
	lg := mintLog(common.HexToAddress("0x2"), 1, common.Hash{})
	lg.Topics = lg.Topics[:3] // topic 数不符

	w.handleLog(lg)

	assert.Empty(t, w.Recent())
}

func TestRecentRingBuffer(t *testing.T) {
	w := newTestWatcher()
	for i := int64(1); i <= recentMintCap+5; i++ {
		w.handleLog(mintLog(common.HexToAddress("0x2"), i, common.HexToHash(fmt.Sprintf("0x%x", i))))
	}

	recent := w.Recent()
	require.Len(t, recent, recentMintCap)
	// 最新在前
	assert.Equal(t, uint64(recentMintCap+5), recent[0].TokenID)
	assert.Equal(t, uint64(6), recent[len(recent)-1].TokenID)
}
