package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/worldcup-insights/internal/usecase"
)

type facetFunc func(ctx context.Context, code string) (any, error)

func erase[T any](fn func(context.Context, string) (T, error)) facetFunc {
	return func(ctx context.Context, code string) (any, error) {
		return fn(ctx, code)
	}
}

// teamFacets lists the single-team statistics served under /v1/stats.
// Momentum is routed separately because it takes a span.
func (h *Handler) teamFacets() map[string]facetFunc {
	svc := h.analyticsService
	return map[string]facetFunc{
		"goals":           erase(svc.GoalStats),
		"home-away":       erase(svc.HomeAway),
		"streaks":         erase(svc.Streaks),
		"graph":           erase(svc.Graph),
		"goal-percentage": erase(svc.GoalPercentage),
		"effectiveness":   erase(svc.Effectiveness),
		"possession":      erase(svc.Possession),
		"record":          erase(svc.Record),
	}
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	facet := r.PathValue("facet")
	compute, ok := h.teamFacets()[facet]
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown statistic %q", usecase.ErrNotFound, facet))
		return
	}

	req := teamRequest{Code: teamCode(r.PathValue("code"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := compute(ctx, req.Code)
	if err != nil {
		h.logger.WarnContext(ctx, "team stats failed", "facet", facet, "team", req.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) GetMomentum(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMomentum")
	defer span.End()

	windowSpan, err := queryInt(r, "span")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := momentumRequest{Code: teamCode(r.PathValue("code")), Span: windowSpan}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	momentum, err := h.analyticsService.Momentum(ctx, req.Code, req.Span)
	if err != nil {
		h.logger.WarnContext(ctx, "momentum failed", "team", req.Code, "span", req.Span, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, momentum)
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHistory")
	defer span.End()

	req, err := h.matchup(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	history, err := h.analyticsService.HeadToHead(ctx, req.TeamA, req.TeamB)
	if err != nil {
		h.logger.WarnContext(ctx, "head to head failed", "team_a", req.TeamA, "team_b", req.TeamB, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, history)
}

func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPrediction")
	defer span.End()

	req, err := h.matchup(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	prediction, err := h.analyticsService.Predict(ctx, req.TeamA, req.TeamB)
	if err != nil {
		h.logger.WarnContext(ctx, "prediction failed", "team_a", req.TeamA, "team_b", req.TeamB, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, prediction)
}

func (h *Handler) matchup(ctx context.Context, r *http.Request) (matchupRequest, error) {
	req := matchupRequest{
		TeamA: teamCode(r.PathValue("teamA")),
		TeamB: teamCode(r.PathValue("teamB")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return matchupRequest{}, err
	}
	return req, nil
}
