package restapi

import (
	"net/http"
	"strings"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// APIHoldingsResponse is the response envelope of the holdings endpoints.
type APIHoldingsResponse struct {
	Data struct {
		Holdings entity.WalletHoldings `json:"holdings"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// HoldingsHandler serves the wallet holdings endpoints.
type HoldingsHandler struct {
	scanService port.ScanService
	registry    port.ChainRegistry
}

// NewHoldingsHandler creates a new HoldingsHandler.
func NewHoldingsHandler(scanService port.ScanService, registry port.ChainRegistry) *HoldingsHandler {
	return &HoldingsHandler{scanService: scanService, registry: registry}
}

// GetWalletHoldingsHandler handles GET /holdings/:walletAddress.
// Optional repeated query param "chain" restricts the scan; an unknown
// chain in the filter is a client error.
func (h *HoldingsHandler) GetWalletHoldingsHandler(c *gin.Context) {
	wallet := c.Param("walletAddress")
	if !common.IsHexAddress(wallet) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet address"})
		return
	}

	var chains []string
	for _, raw := range c.QueryArray("chain") {
		for _, identifier := range strings.Split(raw, ",") {
			identifier = strings.TrimSpace(identifier)
			if identifier == "" {
				continue
			}
			if _, ok := h.registry.ChainByIdentifier(identifier); !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown chain: " + identifier})
				return
			}
			chains = append(chains, identifier)
		}
	}

	holdings := h.scanService.ScanWallet(c.Request.Context(), wallet, chains)

	response := APIHoldingsResponse{}
	response.Data.Holdings = holdings
	switch {
	case len(holdings.Errors) > 0 && len(holdings.Holdings) == 0:
		response.StatusMessage = "Failed to retrieve any holdings due to discovery errors."
	case len(holdings.Errors) > 0:
		response.StatusMessage = "Holdings retrieved. Some discovery branches encountered errors."
	default:
		response.StatusMessage = "Holdings retrieved successfully."
	}
	c.JSON(http.StatusOK, response)
}

// GetChainsHandler handles GET /chains.
func (h *HoldingsHandler) GetChainsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"chains": h.registry.Chains()}})
}
