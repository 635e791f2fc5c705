package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
	"github.com/alphavelocity/moneyclip/internal/models"
	"github.com/alphavelocity/moneyclip/internal/services"
)

type PortfolioHandler struct {
	portfolio services.PortfolioService
}

func NewPortfolioHandler(portfolio services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// GET /api/portfolio/gains?year=2025
// @Summary Realized capital gains for a year
// @Description FIFO-matched realized gains, one row per sell, ordered by ticker then sell date
// @Tags portfolio
// @Produce json
// @Param year query int true "Reporting year"
// @Success 200 {array} models.RealizedGain
// @Failure 400 {string} string "Malformed year"
// @Failure 422 {string} string "Missing or insufficient purchase lots"
// @Router /portfolio/gains [get]
func (h *PortfolioHandler) HandleGains(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, &apperrors.ErrValidation{Field: "year", Message: "must be an integer"})
		return
	}

	rows, err := h.portfolio.RealizedGains(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(rows)
}

type tradeRequest struct {
	Date     string  `json:"date"`
	Ticker   string  `json:"ticker"`
	Quantity string  `json:"quantity"`
	Price    string  `json:"price"`
	Fees     string  `json:"fees"`
	Side     string  `json:"side"`
	Note     *string `json:"note"`
}

// GET/POST /api/portfolio/trades
// @Summary List or record trades
// @Tags portfolio
// @Accept json
// @Produce json
// @Param ticker query string false "Filter by ticker on GET"
// @Param limit query int false "Max rows on GET (default 50)"
// @Success 200 {array} models.Trade
// @Success 201 {object} models.Trade
// @Failure 400 {string} string "Malformed trade"
// @Router /portfolio/trades [get]
func (h *PortfolioHandler) HandleTrades(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		trades, err := h.portfolio.ListTrades(r.Context(), r.URL.Query().Get("ticker"), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		json.NewEncoder(w).Encode(trades)

	case http.MethodPost:
		var req tradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		date, err := models.ParseDate(req.Date)
		if err != nil {
			writeError(w, err)
			return
		}
		quantity, err := models.ParseDecimal("quantity", req.Quantity)
		if err != nil {
			writeError(w, err)
			return
		}
		price, err := models.ParseDecimal("price", req.Price)
		if err != nil {
			writeError(w, err)
			return
		}
		fees, err := models.ParseDecimal("fees", orZero(req.Fees))
		if err != nil {
			writeError(w, err)
			return
		}

		trade := &models.Trade{
			Date:     date,
			Ticker:   req.Ticker,
			Quantity: quantity,
			Price:    price,
			Fees:     fees,
			Side:     req.Side,
			Note:     req.Note,
		}
		if err := h.portfolio.RecordTrade(r.Context(), trade); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(trade)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type assetRequest struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// GET/POST /api/portfolio/assets
// @Summary List or create assets
// @Tags portfolio
// @Accept json
// @Produce json
// @Success 200 {array} models.Asset
// @Success 201 {object} models.Asset
// @Failure 400 {string} string "Malformed asset"
// @Router /portfolio/assets [get]
func (h *PortfolioHandler) HandleAssets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		assets, err := h.portfolio.ListAssets(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		json.NewEncoder(w).Encode(assets)

	case http.MethodPost:
		var req assetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		asset := &models.Asset{Ticker: req.Ticker, Name: req.Name, Currency: req.Currency}
		if err := h.portfolio.CreateAsset(r.Context(), asset); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(asset)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
