package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/iamasit07/4-in-a-row/solo/internal/domain"
	"github.com/iamasit07/4-in-a-row/solo/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/solo/internal/service/game"
	"github.com/iamasit07/4-in-a-row/solo/pkg/auth"
	"github.com/iamasit07/4-in-a-row/solo/pkg/httputil"
)

// SnapshotReader serves cached snapshots to spectators.
type SnapshotReader interface {
	LoadSnapshot(ctx context.Context, sessionID string) (json.RawMessage, error)
}

type SessionHandler struct {
	SessionManager *game.SessionManager
	Snapshots      SnapshotReader
	Defaults       game.Options
	Difficulty     string
}

func NewSessionHandler(sm *game.SessionManager, snapshots SnapshotReader, defaults game.Options, difficulty string) *SessionHandler {
	return &SessionHandler{SessionManager: sm, Snapshots: snapshots, Defaults: defaults, Difficulty: difficulty}
}

type createSessionRequest struct {
	Difficulty string `json:"difficulty"`
	HumanColor string `json:"humanColor"`
}

type createSessionResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}

// CreateSession starts a game against the computer and returns the token
// the websocket init frame expects.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	opts := h.Defaults
	if req.HumanColor != "" {
		color, ok := domain.ParseColor(req.HumanColor)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "humanColor must be first or second"})
			return
		}
		opts.HumanColor = color
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = h.Difficulty
	}

	entry, err := h.SessionManager.CreateSession(game.CreateRequest{Difficulty: difficulty, Options: opts})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateSessionToken(entry.ID)
	if err != nil {
		h.SessionManager.RemoveSession(entry.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}
	httputil.SetSessionCookie(c.Writer, token)

	c.JSON(http.StatusCreated, createSessionResponse{SessionID: entry.ID, Token: token})
}

// GetLiveGames lists sessions that are still being played.
func (h *SessionHandler) GetLiveGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.GetActiveGames())
}

// GetSnapshot serves the cached snapshot, falling back to the in-memory
// one when the cache is disabled or has not seen the session yet.
func (h *SessionHandler) GetSnapshot(c *gin.Context) {
	id := c.Param("id")

	if h.Snapshots != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		raw, err := h.Snapshots.LoadSnapshot(ctx, id)
		switch {
		case err == nil:
			c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
			return
		case errors.Is(err, redis.ErrSnapshotNotFound), errors.Is(err, redis.ErrCacheDisabled):
			// not published yet, or no cache: the live session still answers
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Snapshot cache unavailable"})
			return
		}
	}

	entry, ok := h.SessionManager.GetSession(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, entry.Loop.Snapshot())
}

type HealthHandler struct {
	SessionManager *game.SessionManager
	CacheEnabled   func() bool
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	cache := false
	if h.CacheEnabled != nil {
		cache = h.CacheEnabled()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": len(h.SessionManager.GetActiveGames()),
		"cache":    cache,
	})
}
