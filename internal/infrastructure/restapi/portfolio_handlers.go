package restapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio_checker/internal/app/port"
	"portfolio_checker/internal/domain/entity"
)

// APIProfileResponse is the envelope for the profile lookup endpoint.
type APIProfileResponse struct {
	Data struct {
		Profiles []entity.Profile `json:"profiles"`
		Wallets  []entity.Wallet  `json:"wallets,omitempty"`
	} `json:"data"`
	ServiceErrors []entity.PortfolioError `json:"service_errors,omitempty"`
	StatusMessage string                  `json:"status_message"`
}

// APIPortfolioResponse is the envelope for the portfolio endpoint.
type APIPortfolioResponse struct {
	Data struct {
		Portfolio entity.PortfolioResult `json:"portfolio"`
	} `json:"data"`
	ServiceErrors []entity.PortfolioError `json:"service_errors,omitempty"`
	StatusMessage string                  `json:"status_message"`
}

// PortfolioHandler handles HTTP requests for profiles and portfolios.
type PortfolioHandler struct {
	profileService   port.ProfileService
	portfolioService port.PortfolioService
	logger           port.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(ps port.ProfileService, pfs port.PortfolioService, l port.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		profileService:   ps,
		portfolioService: pfs,
		logger:           l,
	}
}

// GetProfileHandler resolves an account identifier (wallet address, Farcaster
// username, FID or "x:"-prefixed X handle) to its profiles and wallet set.
func (h *PortfolioHandler) GetProfileHandler(c *gin.Context) {
	ctx := c.Request.Context()
	identifier := requestIdentifier(c)

	var response APIProfileResponse

	profiles, err := h.profileService.ResolveProfiles(ctx, identifier)
	if err != nil {
		h.logger.Error("Profile resolution failed", "identifier", identifier, "error", err)
		response.StatusMessage = "Failed to resolve account identifier: " + err.Error()
		c.JSON(http.StatusBadGateway, response)
		return
	}
	response.Data.Profiles = profiles

	if len(profiles) == 0 {
		response.StatusMessage = "No profile matched the given identifier."
		c.JSON(http.StatusNotFound, response)
		return
	}

	wallets, walletErrs := h.portfolioService.WalletSet(ctx, &profiles[0], queryWallets(c))
	response.Data.Wallets = wallets
	response.ServiceErrors = walletErrs

	if len(walletErrs) > 0 {
		response.StatusMessage = "Profile resolved. Some wallet enrichments encountered errors."
	} else {
		response.StatusMessage = "Profile resolved successfully."
	}
	c.JSON(http.StatusOK, response)
}

// GetPortfolioHandler returns the aggregated portfolio for an account
// identifier. Upstream failures degrade: the envelope always carries a valid
// (possibly empty) portfolio alongside any service errors.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	ctx := c.Request.Context()
	identifier := requestIdentifier(c)

	opts := entity.PortfolioOptions{
		Networks:     splitList(c.Query("networks")),
		ExtraWallets: queryWallets(c),
	}
	if rawLimit := c.Query("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status_message": "limit must be a positive integer"})
			return
		}
		opts.Limit = limit
	}

	result, serviceErrors := h.portfolioService.FetchPortfolio(ctx, identifier, opts)

	response := APIPortfolioResponse{ServiceErrors: serviceErrors}
	response.Data.Portfolio = result

	switch {
	case result.Error != "" && len(result.Holdings) == 0:
		response.StatusMessage = "No portfolio data available: " + result.Error
	case result.Error != "":
		response.StatusMessage = "Portfolio retrieved from partial data. Some networks encountered errors."
	case len(result.Holdings) == 0:
		response.StatusMessage = "No holdings found for this account."
	default:
		response.StatusMessage = "Portfolio retrieved successfully."
	}

	c.JSON(http.StatusOK, response)
}

// requestIdentifier reads the identifier path param. `?type=x` marks the
// identifier as an X handle, equivalent to the "x:" prefix.
func requestIdentifier(c *gin.Context) string {
	identifier := c.Param("identifier")
	if strings.EqualFold(c.Query("type"), "x") && !strings.HasPrefix(strings.ToLower(identifier), "x:") {
		identifier = "x:" + identifier
	}
	return identifier
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func queryWallets(c *gin.Context) []string {
	return splitList(c.Query("wallets"))
}
