package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/playforge/miniapp-api/internal/middleware"
	"github.com/playforge/miniapp-api/internal/model"
	"github.com/playforge/miniapp-api/internal/service"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	playerService    *service.PlayerService
	tracebackEnabled bool
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *service.PlayerService, tracebackEnabled bool) *PlayerHandler {
	return &PlayerHandler{
		playerService:    playerService,
		tracebackEnabled: tracebackEnabled,
	}
}

// CreateOrGet handles POST /api/v1/players - resolve the calling player.
// The identity comes from the verified launch payload, never from the
// request body.
func (h *PlayerHandler) CreateOrGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		WriteError(w, model.NewUnauthenticatedError())
		return
	}

	username := identity.Username
	if username == "" {
		username = identity.FirstName
	}

	player, err := h.playerService.CreateOrGet(r.Context(), identity.PlayerID, username)
	if err != nil {
		HandleServiceError(r.Context(), w, err, h.tracebackEnabled)
		return
	}

	WriteResult(w, http.StatusOK, player.Schema())
}

// Get handles GET /api/v1/players/{playerIds}.
//
// A single id returns the player in the result envelope, or 404. A
// comma-separated list returns the matching page in the results envelope;
// absent ids are skipped silently.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("playerIds")

	ids, fieldErrors := parsePlayerIDs(raw)
	if len(fieldErrors) > 0 {
		WriteError(w, model.NewParameterValidationError(fieldErrors))
		return
	}

	if len(ids) == 1 && !strings.Contains(raw, ",") {
		player, err := h.playerService.GetByID(r.Context(), ids[0])
		if err != nil {
			HandleServiceError(r.Context(), w, err, h.tracebackEnabled)
			return
		}
		WriteResult(w, http.StatusOK, player.Schema())
		return
	}

	page, limit, resp := parsePageParams(r)
	if resp != nil {
		WriteError(w, resp)
		return
	}

	players, pagination, err := h.playerService.ListByIDs(r.Context(), ids, page, limit)
	if err != nil {
		HandleServiceError(r.Context(), w, err, h.tracebackEnabled)
		return
	}

	WriteResults(w, http.StatusOK, schemas(players), pagination)
}

// Search handles GET /api/v1/players/username/{username} - substring
// search over usernames, case-insensitive, paginated.
func (h *PlayerHandler) Search(w http.ResponseWriter, r *http.Request) {
	fragment := r.PathValue("username")

	page, limit, resp := parsePageParams(r)
	if resp != nil {
		WriteError(w, resp)
		return
	}

	players, pagination, err := h.playerService.SearchByUsername(r.Context(), fragment, page, limit)
	if err != nil {
		HandleServiceError(r.Context(), w, err, h.tracebackEnabled)
		return
	}

	WriteResults(w, http.StatusOK, schemas(players), pagination)
}

// parsePlayerIDs splits a comma-separated id segment. Every element must
// be an integer; offenders are reported per position.
func parsePlayerIDs(raw string) ([]int64, []model.FieldError) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	var fieldErrors []model.FieldError

	for i, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			fieldErrors = append(fieldErrors, model.FieldError{
				Field:   "playerIds[" + strconv.Itoa(i) + "]",
				Message: "value is not a valid integer",
			})
			continue
		}
		ids = append(ids, id)
	}
	return ids, fieldErrors
}

// parsePageParams reads page and limit from the query string. Defaults
// are page 1 and limit 20; both must be at least 1 when supplied.
func parsePageParams(r *http.Request) (page, limit int, resp *model.ErrorResponse) {
	page, limit = 1, 20
	var fieldErrors []model.FieldError

	if raw := r.URL.Query().Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fieldErrors = append(fieldErrors, model.FieldError{Field: "page", Message: "value is not a valid integer"})
		case v < 1:
			fieldErrors = append(fieldErrors, model.FieldError{Field: "page", Message: "value must be greater than or equal to 1"})
		default:
			page = v
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fieldErrors = append(fieldErrors, model.FieldError{Field: "limit", Message: "value is not a valid integer"})
		case v < 1:
			fieldErrors = append(fieldErrors, model.FieldError{Field: "limit", Message: "value must be greater than or equal to 1"})
		default:
			limit = v
		}
	}

	if len(fieldErrors) > 0 {
		return 0, 0, model.NewQueryValidationError(fieldErrors)
	}
	return page, limit, nil
}

func schemas(players []*model.Player) []*model.PlayerSchema {
	out := make([]*model.PlayerSchema, 0, len(players))
	for _, p := range players {
		out = append(out, p.Schema())
	}
	return out
}
