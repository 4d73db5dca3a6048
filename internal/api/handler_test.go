package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"PortfolioMandala/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTrader = "0x1234567890abcdef1234567890abcdef12345678"

func newTestConfig(dataAPIURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Polymarket.DataAPIURL = dataAPIURL
	cfg.NFT.ContractAddress = "0x98Ef066332b16d0f427ae936F0a3662c5ae68890"
	cfg.NFT.ChainID = 80002
	config.ApplyDefaults(cfg)
	return cfg
}

func newTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	r := gin.New()
	mandalaHandler := NewMandalaHandler(cfg, logger)
	r.GET("/api/mandala/:address", mandalaHandler.GetMandala)

	nftHandler := NewNFTHandler(cfg, nil, logger)
	r.GET("/api/nft/contract-info", nftHandler.GetContractInfo)
	r.GET("/api/nft/mint-status/:address", nftHandler.GetMintStatus)
	r.POST("/api/nft/prepare-mint", nftHandler.PrepareMint)
	r.POST("/api/nft/transaction-status", nftHandler.GetTransactionStatus)
	r.GET("/api/nft/metadata/:token_id", nftHandler.GetTokenMetadata)
	r.GET("/api/nft/contract-metadata", nftHandler.GetContractMetadata)
	r.GET("/api/nft/recent-mints", nftHandler.GetRecentMints)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetMandalaInvalidAddress(t *testing.T) {
	r := newTestRouter(newTestConfig("http://unused"))

	for _, addr := range []string{"abc", "0x123", "1234567890abcdef1234567890abcdef1234567890", "0xzz34567890abcdef1234567890abcdef12345678"} {
		w := doRequest(r, http.MethodGet, "/api/mandala/"+addr, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "addr=%s", addr)
	}
}

func TestGetMandalaSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"title":"Will Bitcoin hit $100k?","slug":"bitcoin-100k","type":"TRADE","usdcSize":1000}]`))
	}))
	defer upstream.Close()

	r := newTestRouter(newTestConfig(upstream.URL))
	w := doRequest(r, http.MethodGet, "/api/mandala/"+testTrader, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success   bool   `json:"success"`
		SVG       string `json:"svg"`
		Portfolio struct {
			TotalVolume float64 `json:"total_volume"`
			TradeCount  int     `json:"trade_count"`
		} `json:"portfolio"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.SVG, "<svg")
	assert.InDelta(t, 1000, resp.Portfolio.TotalVolume, 1e-9)
	assert.Equal(t, 1, resp.Portfolio.TradeCount)
}

func TestGetMandalaEmptyActivityStillRenders(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	r := newTestRouter(newTestConfig(upstream.URL))
	w := doRequest(r, http.MethodGet, "/api/mandala/"+testTrader, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AWAITING COSMIC DATA")
}

func TestGetMandalaUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	r := newTestRouter(newTestConfig(upstream.URL))
	w := doRequest(r, http.MethodGet, "/api/mandala/"+testTrader, "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestMintStatusInvalidAddress(t *testing.T) {
	r := newTestRouter(newTestConfig("http://unused"))
	w := doRequest(r, http.MethodGet, "/api/nft/mint-status/not-an-address", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrepareMintValidation(t *testing.T) {
	r := newTestRouter(newTestConfig("http://unused"))

	w := doRequest(r, http.MethodPost, "/api/nft/prepare-mint", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/nft/prepare-mint", `{"trader_address":"0x123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionStatusValidation(t *testing.T) {
	r := newTestRouter(newTestConfig("http://unused"))
	w := doRequest(r, http.MethodPost, "/api/nft/transaction-status", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenMetadataInvalidID(t *testing.T) {
	r := newTestRouter(newTestConfig("http://unused"))
	w := doRequest(r, http.MethodGet, "/api/nft/metadata/not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContractInfo(t *testing.T) {
	cfg := newTestConfig("http://unused")
	cfg.NFT.ABIPath = "" // 未配置 artifact，ABI 返回空
	r := newTestRouter(cfg)

	w := doRequest(r, http.MethodGet, "/api/nft/contract-info", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0x98Ef066332b16d0f427ae936F0a3662c5ae68890")
	assert.Contains(t, w.Body.String(), "80002")
}

func TestContractMetadata(t *testing.T) {
	r := newTestRouter(newTestConfig("http://unused"))
	w := doRequest(r, http.MethodGet, "/api/nft/contract-metadata", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Portfolio Mandala")
}

func TestRecentMintsWithoutWatcher(t *testing.T) {
	r := newTestRouter(newTestConfig("http://unused"))
	w := doRequest(r, http.MethodGet, "/api/nft/recent-mints", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mints":[]`)
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, isValidAddress(testTrader))
	assert.True(t, isValidAddress("0x98Ef066332b16d0f427ae936F0a3662c5ae68890"))
	assert.False(t, isValidAddress(""))
	assert.False(t, isValidAddress("0x123"))
	assert.False(t, isValidAddress(strings.Repeat("a", 42)))
}
