package httpapi

import (
	"net/http"
	"strconv"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.catalogService.ListTeams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teams)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	req := teamRequest{Code: teamCode(r.PathValue("code"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.catalogService.GetTeam(ctx, req.Code)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team", req.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, details)
}

// ListMatches serves every match, optionally narrowed by ?team= and ?year=.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	year, err := queryInt(r, "year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := listMatchesRequest{Team: teamCode(r.URL.Query().Get("team")), Year: year}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.catalogService.ListMatches(ctx, req.Team)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "team", req.Team, "error", err)
		writeError(ctx, w, err)
		return
	}
	if req.Year != 0 {
		edition := strconv.Itoa(req.Year)
		filtered := make([]worldcup.Match, 0)
		for _, m := range matches {
			if m.Year == edition {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	writeSuccess(ctx, w, http.StatusOK, matchListDTO{Count: len(matches), Items: matches})
}
