package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
	"github.com/alphavelocity/moneyclip/internal/models"
	"github.com/alphavelocity/moneyclip/internal/services"
)

type FXHandler struct {
	fx services.FXService
}

func NewFXHandler(fx services.FXService) *FXHandler {
	return &FXHandler{fx: fx}
}

type convertResponse struct {
	Amount string `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
	Date   string `json:"date"`
	Result string `json:"result"`
}

// GET /api/fx/convert?amount=100.00&date=2025-08-02&from=USD&to=JPY
// @Summary Convert an amount between currencies
// @Description Convert using the best available rate path as of a date
// @Tags fx
// @Produce json
// @Param amount query string true "Amount (decimal string)"
// @Param date query string true "As-of date (YYYY-MM-DD)"
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Success 200 {object} convertResponse
// @Failure 400 {string} string "Malformed amount or date"
// @Failure 422 {string} string "No conversion path"
// @Router /fx/convert [get]
func (h *FXHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	amount, err := models.ParseDecimal("amount", q.Get("amount"))
	if err != nil {
		writeError(w, err)
		return
	}
	date, err := models.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	from := q.Get("from")
	to := q.Get("to")
	if from == "" || to == "" {
		writeError(w, &apperrors.ErrValidation{Field: "from/to", Message: "both currencies are required"})
		return
	}

	result, err := h.fx.Convert(r.Context(), amount, date, from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(convertResponse{
		Amount: amount.String(),
		From:   models.NormalizeCurrency(from),
		To:     models.NormalizeCurrency(to),
		Date:   date.Format(models.DateLayout),
		Result: result.String(),
	})
}

type rateRequest struct {
	Date   string `json:"date"`
	Base   string `json:"base"`
	Quote  string `json:"quote"`
	Rate   string `json:"rate"`
	Source string `json:"source"`
}

// GET/POST /api/fx/rates
// @Summary List or ingest FX rates
// @Description GET returns recent rates; POST ingests a batch atomically
// @Tags fx
// @Accept json
// @Produce json
// @Param limit query int false "Max rows on GET (default 50)"
// @Success 200 {array} models.FXRate
// @Success 201 {object} map[string]int
// @Failure 400 {string} string "Malformed rate row"
// @Router /fx/rates [get]
func (h *FXHandler) HandleRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		rates, err := h.fx.ListRates(r.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		json.NewEncoder(w).Encode(rates)

	case http.MethodPost:
		var reqs []rateRequest
		if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		rates := make([]*models.FXRate, 0, len(reqs))
		for _, req := range reqs {
			date, err := models.ParseDate(req.Date)
			if err != nil {
				writeError(w, err)
				return
			}
			value, err := models.ParseDecimal("rate", req.Rate)
			if err != nil {
				writeError(w, err)
				return
			}
			source := req.Source
			if source == "" {
				source = models.FXSourceManual
			}
			rates = append(rates, &models.FXRate{
				Date:   date,
				Base:   req.Base,
				Quote:  req.Quote,
				Rate:   value,
				Source: source,
			})
		}

		if err := h.fx.SaveRates(r.Context(), rates); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]int{"saved": len(rates)})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
