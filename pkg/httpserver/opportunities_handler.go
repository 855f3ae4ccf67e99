package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkirwin/exchange-arb/internal/arbitrage"
	"go.uber.org/zap"
)

// OpportunitySource exposes the most recent scan results.
type OpportunitySource interface {
	Latest() ([]*arbitrage.Opportunity, time.Time)
}

// OpportunitiesHandler handles HTTP requests for detected opportunities.
type OpportunitiesHandler struct {
	source OpportunitySource
	logger *zap.Logger
}

// NewOpportunitiesHandler creates a new opportunities handler.
func NewOpportunitiesHandler(source OpportunitySource, logger *zap.Logger) *OpportunitiesHandler {
	return &OpportunitiesHandler{
		source: source,
		logger: logger,
	}
}

// LegResponse represents one leg of an opportunity.
type LegResponse struct {
	Selection string  `json:"selection"`
	Exchange  string  `json:"exchange"`
	Odds      float64 `json:"odds"`
	Stake     float64 `json:"stake"`
	Liquidity float64 `json:"liquidity"`
	Return    float64 `json:"return"`
}

// OpportunityResponse represents one detected opportunity.
type OpportunityResponse struct {
	ID           string      `json:"id"`
	EventName    string      `json:"event_name"`
	MarketName   string      `json:"market_name"`
	Sport        string      `json:"sport"`
	DetectedAt   time.Time   `json:"detected_at"`
	Leg1         LegResponse `json:"leg1"`
	Leg2         LegResponse `json:"leg2"`
	ImpliedSum   float64     `json:"implied_sum"`
	ProfitMargin float64     `json:"profit_margin"`
	ROI          float64     `json:"roi"`
	TotalStake   float64     `json:"total_stake"`
	NetProfit    float64     `json:"net_profit"`
}

// OpportunitiesResponse represents the HTTP response for the latest scan.
type OpportunitiesResponse struct {
	LastScan      time.Time             `json:"last_scan"`
	Count         int                   `json:"count"`
	Opportunities []OpportunityResponse `json:"opportunities"`
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleOpportunities handles GET /api/opportunities requests.
func (h *OpportunitiesHandler) HandleOpportunities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	opps, lastScan := h.source.Latest()

	response := OpportunitiesResponse{
		LastScan:      lastScan,
		Count:         len(opps),
		Opportunities: make([]OpportunityResponse, 0, len(opps)),
	}

	for _, opp := range opps {
		response.Opportunities = append(response.Opportunities, OpportunityResponse{
			ID:           opp.ID,
			EventName:    opp.EventName,
			MarketName:   opp.MarketName,
			Sport:        string(opp.Sport),
			DetectedAt:   opp.DetectedAt,
			Leg1:         legResponse(opp.Leg1),
			Leg2:         legResponse(opp.Leg2),
			ImpliedSum:   opp.ImpliedSum,
			ProfitMargin: opp.ProfitMargin,
			ROI:          opp.ROI,
			TotalStake:   opp.TotalStake,
			NetProfit:    opp.NetProfit,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
	}
}

func legResponse(leg arbitrage.Leg) LegResponse {
	return LegResponse{
		Selection: leg.Selection,
		Exchange:  leg.Exchange,
		Odds:      leg.Odds,
		Stake:     leg.Stake,
		Liquidity: leg.Liquidity,
		Return:    leg.Return,
	}
}

// writeError writes a JSON error response.
func (h *OpportunitiesHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{Error: message}
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-error-response", zap.Error(err))
	}
}
