package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/internal/interclasse/service"
	"github.com/projetointerclasse/interclasse/pkg/httpx"
	"github.com/projetointerclasse/interclasse/pkg/interclassesdk"
)

// maxJSONBody caps team and match request bodies.
const maxJSONBody = 64 * 1024

var errNoSession = errors.New("role middleware did not attach a session")

type TournamentHandler struct {
	TournamentService *service.TournamentService
}

// HandleCreateTeam godoc
//
//	@Summary		Create Team
//	@Description	Registers a team captained by the logged-in user.
//	@Tags			Tournament
//	@Accept			json
//	@Produce		json
//	@Param			request	body		interclassesdk.TeamRequest		true	"Team name and class"
//	@Success		201		{object}	interclassesdk.Team				"created team"
//	@Failure		400		{object}	interclassesdk.ErrorResponse	"error, error_description, fields"
//	@Failure		401		{object}	interclassesdk.ErrorResponse	"login required"
//	@Failure		403		{object}	interclassesdk.ErrorResponse	"capitao role required"
//	@Router			/v1/teams [post].
func (h *TournamentHandler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeServerError(w, r, "team creation without session", errNoSession)
		return
	}

	var req interclassesdk.TeamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	team, err := h.TournamentService.CreateTeam(r.Context(), domain.TeamDraft{
		Name:      req.Name,
		ClassName: req.ClassName,
		CaptainID: sess.ID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, team)
}

// HandleCreateMatch godoc
//
//	@Summary		Schedule Match
//	@Description	Schedules a match between two existing, distinct teams.
//	@Tags			Tournament
//	@Accept			json
//	@Produce		json
//	@Param			request	body		interclassesdk.MatchRequest		true	"Teams, time and place"
//	@Success		201		{object}	interclassesdk.Match			"scheduled match"
//	@Failure		400		{object}	interclassesdk.ErrorResponse	"error, error_description, fields"
//	@Failure		401		{object}	interclassesdk.ErrorResponse	"login required"
//	@Failure		403		{object}	interclassesdk.ErrorResponse	"juiz role required"
//	@Router			/v1/matches [post].
func (h *TournamentHandler) HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req interclassesdk.MatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	match, err := h.TournamentService.CreateMatch(r.Context(), domain.MatchDraft{
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, match)
}

// HandleListTeams godoc
//
//	@Summary	List Teams
//	@Tags		Tournament
//	@Produce	json
//	@Success	200	{array}	interclassesdk.Team	"teams in creation order"
//	@Router		/v1/teams [get].
func (h *TournamentHandler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func() (any, error) { return h.TournamentService.Teams(r.Context()) })
}

// HandleListMatches godoc
//
//	@Summary	List Matches
//	@Tags		Tournament
//	@Produce	json
//	@Success	200	{array}	interclassesdk.Match	"matches in creation order"
//	@Router		/v1/matches [get].
func (h *TournamentHandler) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func() (any, error) { return h.TournamentService.Matches(r.Context()) })
}

// HandleLeaderboard godoc
//
//	@Summary		Leaderboard
//	@Description	Teams ordered by points, then goal difference.
//	@Tags			Tournament
//	@Produce		json
//	@Success		200	{array}	interclassesdk.Team	"ranked teams"
//	@Router			/v1/leaderboard [get].
func (h *TournamentHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func() (any, error) { return h.TournamentService.Leaderboard(r.Context()) })
}

// HandleTopScorers godoc
//
//	@Summary		Top Scorers
//	@Description	Every player with at least one goal, most goals first.
//	@Tags			Tournament
//	@Produce		json
//	@Success		200	{array}	interclassesdk.Scorer	"scorers"
//	@Router			/v1/top-scorers [get].
func (h *TournamentHandler) HandleTopScorers(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func() (any, error) { return h.TournamentService.TopScorers(r.Context()) })
}

func (h *TournamentHandler) list(w http.ResponseWriter, r *http.Request, fetch func() (any, error)) {
	v, err := fetch()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, interclassesdk.ErrorCodeInvalidRequest, "Invalid JSON in request body")
		return false
	}
	return true
}
