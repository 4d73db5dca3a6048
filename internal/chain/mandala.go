package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// PortfolioMandala 合约最小 ABI：铸造与查询
const mandalaNFTABI = `[
	{"name":"hasMinted","type":"function","stateMutability":"view","inputs":[{"name":"trader","type":"address"}],"outputs":[{"type":"bool"}]},
	{"name":"traderTokenId","type":"function","stateMutability":"view","inputs":[{"name":"trader","type":"address"}],"outputs":[{"type":"uint256"}]},
	{"name":"tokenTrader","type":"function","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"type":"address"}]},
	{"name":"mintMandala","type":"function","inputs":[],"outputs":[{"type":"uint256"}]}
]`

// transferEventSignature ERC-721 Transfer(address,address,uint256) 事件签名
var transferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// callView 只读合约调用：打包入参 → eth_call → 解包返回值
func callView(ctx context.Context, rpcURL, contractAddr, method string, args ...interface{}) ([]interface{}, error) {
	if rpcURL == "" || contractAddr == "" {
		return nil, fmt.Errorf("rpc_url, contract_address 必填")
	}
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	defer client.Close()

	parsed, err := abi.JSON(strings.NewReader(mandalaNFTABI))
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	to := common.HexToAddress(contractAddr)
	res, err := client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	out, err := parsed.Unpack(method, res)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return out, nil
}

// HasMinted 查询交易者是否已铸造
func HasMinted(ctx context.Context, rpcURL, contractAddr, trader string) (bool, error) {
	out, err := callView(ctx, rpcURL, contractAddr, "hasMinted", common.HexToAddress(trader))
	if err != nil {
		return false, err
	}
	minted, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("hasMinted 返回值类型异常")
	}
	return minted, nil
}

// TraderTokenID 查询交易者已铸造的 token id
func TraderTokenID(ctx context.Context, rpcURL, contractAddr, trader string) (*big.Int, error) {
	out, err := callView(ctx, rpcURL, contractAddr, "traderTokenId", common.HexToAddress(trader))
	if err != nil {
		return nil, err
	}
	tokenID, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("traderTokenId 返回值类型异常")
	}
	return tokenID, nil
}

// TokenTrader 按 token id 反查交易者地址
func TokenTrader(ctx context.Context, rpcURL, contractAddr string, tokenID *big.Int) (string, error) {
	out, err := callView(ctx, rpcURL, contractAddr, "tokenTrader", tokenID)
	if err != nil {
		return "", err
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return "", fmt.Errorf("tokenTrader 返回值类型异常")
	}
	if addr == (common.Address{}) {
		return "", fmt.Errorf("token %s 不存在", tokenID)
	}
	return addr.Hex(), nil
}

// MintCalldata 打包 mintMandala() 调用数据。铸造交易由前端钱包签名发送，
// 后端只负责准备 calldata
func MintCalldata() ([]byte, error) {
	parsed, err := abi.JSON(strings.NewReader(mandalaNFTABI))
	if err != nil {
		return nil, err
	}
	return parsed.Pack("mintMandala")
}

// EstimateMintGas 以交易者身份估算铸造 Gas
func EstimateMintGas(ctx context.Context, rpcURL, contractAddr, from string) (uint64, error) {
	if rpcURL == "" || contractAddr == "" {
		return 0, fmt.Errorf("rpc_url, contract_address 必填")
	}
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("dial rpc: %w", err)
	}
	defer client.Close()

	data, err := MintCalldata()
	if err != nil {
		return 0, err
	}
	to := common.HexToAddress(contractAddr)
	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From: common.HexToAddress(from),
		To:   &to,
		Data: data,
	})
	if err != nil {
		return 0, fmt.Errorf("estimate gas: %w", err)
	}
	return gas, nil
}

// TxStatus 铸造交易状态
type TxStatus struct {
	Found       bool     // 是否已上链（false=仍在 pending）
	Success     bool     // 回执状态（true=执行成功）
	BlockNumber uint64   // 所在区块
	TokenID     *big.Int // 从 Transfer 事件解析出的 token id（铸造成功时非 nil）
}

// GetTransactionStatus 查询铸造交易回执。交易未上链时返回 Found=false 而非错误，
// 上层据此回答 pending
func GetTransactionStatus(ctx context.Context, rpcURL, txHash string) (*TxStatus, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("rpc_url 必填")
	}
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	defer client.Close()

	receipt, err := client.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return &TxStatus{Found: false}, nil
		}
		return nil, fmt.Errorf("查询交易回执失败: %w", err)
	}

	status := &TxStatus{
		Found:       true,
		Success:     receipt.Status == types.ReceiptStatusSuccessful,
		BlockNumber: receipt.BlockNumber.Uint64(),
	}
	// 铸造的 Transfer 事件：from 为零地址，token id 在第 4 个 topic
	for _, lg := range receipt.Logs {
		if len(lg.Topics) == 4 && lg.Topics[0] == transferEventSignature &&
			lg.Topics[1] == (common.Hash{}) {
			status.TokenID = new(big.Int).SetBytes(lg.Topics[3].Bytes())
			break
		}
	}
	return status, nil
}
