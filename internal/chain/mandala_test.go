package chain

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintCalldataSelector(t *testing.T) {
	data, err := MintCalldata()
	require.NoError(t, err)

	// mintMandala() 无参数，calldata 即 4 字节函数选择器
	require.Len(t, data, 4)
	assert.Equal(t, crypto.Keccak256([]byte("mintMandala()"))[:4], data)
}

func TestTransferEventSignature(t *testing.T) {
	// ERC-721 Transfer(address,address,uint256) 的标准事件签名
	assert.Equal(t,
		"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		transferEventSignature.Hex())
}
