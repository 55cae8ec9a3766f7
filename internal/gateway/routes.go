package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mcdev12/courtside/internal/events"
	"github.com/mcdev12/courtside/internal/league"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/store"
)

// Router builds the HTTP surface. CORS and server-level middleware are
// layered on by the caller.
func (gw *Gateway) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/leagues", func(r chi.Router) {
		r.Get("/", gw.handleListLeagues)
		r.Post("/", gw.handleCreateLeague)
		r.Post("/close", gw.handleCloseLeague)
		r.Route("/{leagueID}", func(r chi.Router) {
			r.Delete("/", gw.handleDeleteLeague)
			r.Post("/open", gw.handleOpenLeague)
			r.Get("/export", gw.handleExportLeague)
			r.Get("/ws", gw.handleWebSocket)
		})
	})

	r.Post("/command", gw.handleCommand)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func leagueIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "leagueID"))
}

type commandRequest struct {
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args"`
}

type commandResponse struct {
	Result    any    `json:"result,omitempty"`
	Rejection string `json:"rejection,omitempty"`
}

// handleCommand dispatches one registry command. Expected refusals come back
// as 200s with a rejection string; internal failures are 500s with the
// detail kept in the logs.
func (gw *Gateway) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed command request")
		return
	}
	if req.Command == "" {
		writeError(w, http.StatusBadRequest, "missing command name")
		return
	}

	result, err := gw.RunCommand(r.Context(), req.Command, req.Args)
	if err != nil {
		if msg, ok := isRejection(err); ok {
			writeJSON(w, http.StatusOK, commandResponse{Rejection: msg})
			return
		}
		if errors.Is(err, ErrNoLeagueOpen) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		gw.log.Error().Err(err).Str("command", req.Command).Msg("command failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{Result: result})
}

func (gw *Gateway) handleListLeagues(w http.ResponseWriter, r *http.Request) {
	metas, err := gw.leagues.Leagues(r.Context())
	if err != nil {
		gw.log.Error().Err(err).Msg("list leagues")
		writeError(w, http.StatusInternalServerError, "list leagues failed")
		return
	}
	if metas == nil {
		metas = []store.LeagueMeta{}
	}
	writeJSON(w, http.StatusOK, metas)
}

type createLeagueRequest struct {
	Name             string          `json:"name"`
	TID              *int            `json:"tid"`
	StartingSeason   int             `json:"startingSeason"`
	Difficulty       float64         `json:"difficulty"`
	RandomizeRosters bool            `json:"randomizeRosters"`
	File             json.RawMessage `json:"file,omitempty"`
}

// handleCreateLeague bootstraps a league, from scratch or from an uploaded
// league file, and attaches it as the open league.
func (gw *Gateway) handleCreateLeague(w http.ResponseWriter, r *http.Request) {
	var req createLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed create request")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "league name is required")
		return
	}

	opts := league.CreateOptions{
		Name:             req.Name,
		TID:              -1,
		StartingSeason:   req.StartingSeason,
		Difficulty:       req.Difficulty,
		RandomizeRosters: req.RandomizeRosters,
	}
	if req.TID != nil {
		opts.TID = *req.TID
	}
	if opts.StartingSeason == 0 {
		opts.StartingSeason = time.Now().Year()
	}
	if len(req.File) > 0 {
		file, err := league.ParseLeagueFile(req.File)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.File = file
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()
	if err := gw.closeOpenLocked(r.Context()); err != nil {
		gw.log.Error().Err(err).Msg("close previous league")
		writeError(w, http.StatusInternalServerError, "failed to close previous league")
		return
	}

	ls, err := gw.leagues.Create(r.Context(), opts)
	if err != nil {
		gw.log.Error().Err(err).Str("name", req.Name).Msg("create league")
		writeError(w, http.StatusInternalServerError, "create league failed")
		return
	}
	gw.attachLocked(ls)

	g := ls.G()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     ls.ID,
		"tid":    g.UserTID,
		"season": g.Season,
		"phase":  int(g.Phase),
	})
}

// handleOpenLeague attaches a stored league, closing the previous one first.
func (gw *Gateway) handleOpenLeague(w http.ResponseWriter, r *http.Request) {
	id, err := leagueIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.open != nil && gw.open.ID == id {
		writeJSON(w, http.StatusOK, map[string]any{"id": id})
		return
	}
	if err := gw.closeOpenLocked(r.Context()); err != nil {
		gw.log.Error().Err(err).Msg("close previous league")
		writeError(w, http.StatusInternalServerError, "failed to close previous league")
		return
	}

	ls, err := gw.leagues.Open(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrLeagueNotFound) {
			writeError(w, http.StatusNotFound, "league not found")
			return
		}
		gw.log.Error().Err(err).Str("league_id", id.String()).Msg("open league")
		writeError(w, http.StatusInternalServerError, "open league failed")
		return
	}
	gw.attachLocked(ls)

	g := ls.G()
	writeJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"tid":    g.UserTID,
		"season": g.Season,
		"phase":  int(g.Phase),
	})
}

func (gw *Gateway) handleCloseLeague(w http.ResponseWriter, r *http.Request) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if err := gw.closeOpenLocked(r.Context()); err != nil {
		gw.log.Error().Err(err).Msg("close league")
		writeError(w, http.StatusInternalServerError, "close league failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteLeague removes a league from the durable store. An open league
// is detached first without a final flush, since its rows are going away.
func (gw *Gateway) handleDeleteLeague(w http.ResponseWriter, r *http.Request) {
	id, err := leagueIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.open != nil && gw.open.ID == id {
		gw.open.Cache.StopAutoFlush()
		gw.open.Locks.Reset()
		gw.open = nil
	}

	if err := gw.leagues.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrLeagueNotFound) {
			writeError(w, http.StatusNotFound, "league not found")
			return
		}
		gw.log.Error().Err(err).Str("league_id", id.String()).Msg("delete league")
		writeError(w, http.StatusInternalServerError, "delete league failed")
		return
	}
	gw.publish(id, []events.UpdateEvent{events.UpdateLeagues})
	w.WriteHeader(http.StatusNoContent)
}

// handleExportLeague streams a league file. The open league exports straight
// from its cache, unflushed writes included; any other league is loaded into
// a throwaway cache first.
func (gw *Gateway) handleExportLeague(w http.ResponseWriter, r *http.Request) {
	id, err := leagueIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var collections []string
	if raw := r.URL.Query().Get("collections"); raw != "" {
		collections = strings.Split(raw, ",")
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()

	var file *models.LeagueFile
	if gw.open != nil && gw.open.ID == id {
		gw.open.Cache.Acquire()
		file, err = league.Export(gw.open, collections)
		gw.open.Cache.Release()
	} else {
		file, err = gw.exportClosed(r.Context(), id, collections)
	}
	if err != nil {
		if errors.Is(err, store.ErrLeagueNotFound) {
			writeError(w, http.StatusNotFound, "league not found")
			return
		}
		gw.log.Error().Err(err).Str("league_id", id.String()).Msg("export league")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="league.json"`)
	json.NewEncoder(w).Encode(file)
}

// exportClosed loads a league into a throwaway cache and snapshots it.
// Nothing is written, so there is no flush to run afterwards.
func (gw *Gateway) exportClosed(ctx context.Context, id uuid.UUID, collections []string) (*models.LeagueFile, error) {
	ls, err := gw.leagues.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	ls.Cache.Acquire()
	defer ls.Cache.Release()
	return league.Export(ls, collections)
}

// handleWebSocket subscribes a client to a league's update events.
func (gw *Gateway) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id, err := leagueIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid league id")
		return
	}
	gw.hub.HandleWebSocket(w, r, id)
}
