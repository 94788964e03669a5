package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/worldcup-insights/internal/platform/logging"
	"github.com/riskibarqy/worldcup-insights/internal/usecase"
)

type Handler struct {
	catalogService   *usecase.CatalogService
	analyticsService *usecase.AnalyticsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	analyticsService *usecase.AnalyticsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:   catalogService,
		analyticsService: analyticsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports 503 until the catalog finished loading.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	catalog, err := h.catalogService.Snapshot(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, readinessDTO{
		Status:   "ready",
		Years:    catalog.Years,
		Matches:  len(catalog.Matches),
		Teams:    len(catalog.Teams),
		LoadedAt: catalog.LoadedAt,
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type teamRequest struct {
	Code string `validate:"required,alpha,len=3"`
}

type matchupRequest struct {
	TeamA string `validate:"required,alpha,len=3"`
	TeamB string `validate:"required,alpha,len=3,nefield=TeamA"`
}

type listMatchesRequest struct {
	Team string `validate:"omitempty,alpha,len=3"`
	Year int    `validate:"omitempty,gte=1930"`
}

type momentumRequest struct {
	Code string `validate:"required,alpha,len=3"`
	Span int    `validate:"gte=0,lte=50"`
}

func teamCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// queryInt parses an optional integer query parameter. Missing means 0.
func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
