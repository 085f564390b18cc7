package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"swapgate/src/Infrastructure/sideshift"
	"swapgate/src/logger"
	"swapgate/src/swap/domain"
)

// Handler binds usecase + logger
type Handler struct {
	service domain.SwapUseCase
	logger  *logger.Logger
}

func NewHandler(s domain.SwapUseCase, l *logger.Logger) *Handler {
	return &Handler{service: s, logger: l}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/swap/quote", h.FetchSwapQuote)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// FetchSwapQuote godoc
//
//	@Summary		Create and fund a fixed-rate swap quote
//	@Description	Runs the quote pipeline against the provider and funds the returned deposit address from the source wallet
//	@Tags			swap
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SwapQuoteRequestBody	true	"Request body"
//	@Success		200	{object}	SwapQuoteResponseBody
//	@Failure		400	{object}	ErrorResponseBody
//	@Failure		403	{object}	ErrorResponseBody
//	@Failure		422	{object}	ErrorResponseBody
//	@Failure		502	{object}	ErrorResponseBody
//	@Router			/swap/quote [post]
func (h *Handler) FetchSwapQuote(w http.ResponseWriter, r *http.Request) {
	var body SwapQuoteRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponseBody{Error: "invalid request"})
		return
	}
	req, err := body.ToSwapRequest()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponseBody{Error: err.Error()})
		return
	}
	res, err := h.service.FetchSwapQuote(r.Context(), req)
	if err != nil {
		h.logger.Errorf("FetchSwapQuote err: %v", err)
		status, payload := mapError(err)
		writeJSON(w, status, payload)
		return
	}
	writeJSON(w, http.StatusOK, fromSwapResult(res))
}

// mapError translates the pipeline's error taxonomy onto HTTP statuses.
// Limit errors expose the boundary so callers can prompt for a corrected
// amount.
func mapError(err error) (int, ErrorResponseBody) {
	var (
		pairErr  *domain.UnsupportedPairError
		belowErr *domain.BelowLimitError
		aboveErr *domain.AboveLimitError
		provErr  *domain.UnclassifiedProviderError
		httpErr  *sideshift.HTTPError
	)
	switch {
	case errors.Is(err, domain.ErrGeoRestricted):
		return http.StatusForbidden, ErrorResponseBody{Error: err.Error(), Kind: "geo_restricted"}
	case errors.As(err, &pairErr):
		return http.StatusUnprocessableEntity, ErrorResponseBody{Error: err.Error(), Kind: "unsupported_pair"}
	case errors.As(err, &belowErr):
		return http.StatusBadRequest, ErrorResponseBody{Error: err.Error(), Kind: "below_limit", Limit: belowErr.NativeMin.String()}
	case errors.As(err, &aboveErr):
		return http.StatusBadRequest, ErrorResponseBody{Error: err.Error(), Kind: "above_limit", Limit: aboveErr.NativeMax.String()}
	case errors.As(err, &httpErr):
		return http.StatusBadGateway, ErrorResponseBody{Error: "provider unavailable", Kind: "transport"}
	case errors.As(err, &provErr):
		return http.StatusBadGateway, ErrorResponseBody{Error: err.Error(), Kind: "provider"}
	default:
		return http.StatusInternalServerError, ErrorResponseBody{Error: "internal server error"}
	}
}
