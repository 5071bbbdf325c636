package routes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/gamecatalog/internal/app/domain"
	"github.com/fr0stylo/gamecatalog/internal/app/services"
)

// GameService is the catalog use-case surface the HTTP layer depends on.
type GameService interface {
	ListGames(ctx context.Context) ([]domain.Game, error)
	CreateGame(ctx context.Context, input services.GameInput) (domain.Game, error)
	UpdateGame(ctx context.Context, id int64, input services.GameInput) (domain.Game, error)
	DeleteGame(ctx context.Context, id int64) error
	SearchGames(ctx context.Context, input services.SearchInput) ([]domain.Game, error)
}

// Populator runs the feed ingestion pipeline.
type Populator interface {
	Populate(ctx context.Context) (domain.PopulateSummary, error)
}

// GameRoutes registers the /api/games endpoints.
type GameRoutes struct {
	games     GameService
	populator Populator
	log       *slog.Logger
}

type errorResponse struct {
	Error    string   `json:"error"`
	Warnings []string `json:"warnings,omitempty"`
}

type deleteResponse struct {
	ID int64 `json:"id"`
}

// NewGameRoutes constructs game routes.
func NewGameRoutes(games GameService, populator Populator, log *slog.Logger) *GameRoutes {
	if log == nil {
		log = slog.Default()
	}
	return &GameRoutes{games: games, populator: populator, log: log}
}

// RegisterRoutes registers game endpoints.
func (r *GameRoutes) RegisterRoutes(s *echo.Echo) {
	api := s.Group("/api/games")

	api.GET("", r.handleList)
	api.POST("", r.handleCreate)
	api.PUT("/:id", r.handleUpdate)
	api.DELETE("/:id", r.handleDelete)
	api.POST("/search", r.handleSearch)
	api.POST("/populate", r.handlePopulate)
}

func (r *GameRoutes) handleList(c echo.Context) error {
	games, err := r.games.ListGames(c.Request().Context())
	if err != nil {
		return r.respondError(c, err)
	}
	return c.JSON(http.StatusOK, games)
}

func (r *GameRoutes) handleCreate(c echo.Context) error {
	var input services.GameInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	game, err := r.games.CreateGame(c.Request().Context(), input)
	if err != nil {
		return r.respondError(c, err)
	}
	return c.JSON(http.StatusOK, game)
}

func (r *GameRoutes) handleUpdate(c echo.Context) error {
	id, ok := parseGameID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid game id"})
	}
	var input services.GameInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	game, err := r.games.UpdateGame(c.Request().Context(), id, input)
	if err != nil {
		return r.respondError(c, err)
	}
	return c.JSON(http.StatusOK, game)
}

func (r *GameRoutes) handleDelete(c echo.Context) error {
	id, ok := parseGameID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid game id"})
	}
	if err := r.games.DeleteGame(c.Request().Context(), id); err != nil {
		return r.respondError(c, err)
	}
	return c.JSON(http.StatusOK, deleteResponse{ID: id})
}

func (r *GameRoutes) handleSearch(c echo.Context) error {
	var input services.SearchInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	games, err := r.games.SearchGames(c.Request().Context(), input)
	if err != nil {
		return r.respondError(c, err)
	}
	return c.JSON(http.StatusOK, games)
}

func (r *GameRoutes) handlePopulate(c echo.Context) error {
	summary, err := r.populator.Populate(c.Request().Context())
	if err != nil {
		return r.respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (r *GameRoutes) respondError(c echo.Context, err error) error {
	ctx := c.Request().Context()
	switch services.ClassifyError(err) {
	case services.ErrorInvalidInput:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case services.ErrorNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{Error: domain.ErrGameNotFound.Error()})
	case services.ErrorUpstream:
		var sourcesErr *services.SourcesFailedError
		warnings := []string{}
		if errors.As(err, &sourcesErr) {
			warnings = sourcesErr.Warnings
		}
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error(), Warnings: warnings})
	default:
		r.log.ErrorContext(ctx, "Game request failed", "error", err, "route", c.Path())
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func parseGameID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
