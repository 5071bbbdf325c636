package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr0stylo/gamecatalog/internal/app/domain"
	"github.com/fr0stylo/gamecatalog/internal/app/services"
)

type fakeGameService struct {
	listFn   func(ctx context.Context) ([]domain.Game, error)
	createFn func(ctx context.Context, input services.GameInput) (domain.Game, error)
	updateFn func(ctx context.Context, id int64, input services.GameInput) (domain.Game, error)
	deleteFn func(ctx context.Context, id int64) error
	searchFn func(ctx context.Context, input services.SearchInput) ([]domain.Game, error)
}

func (f *fakeGameService) ListGames(ctx context.Context) ([]domain.Game, error) {
	return f.listFn(ctx)
}

func (f *fakeGameService) CreateGame(ctx context.Context, input services.GameInput) (domain.Game, error) {
	return f.createFn(ctx, input)
}

func (f *fakeGameService) UpdateGame(ctx context.Context, id int64, input services.GameInput) (domain.Game, error) {
	return f.updateFn(ctx, id, input)
}

func (f *fakeGameService) DeleteGame(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeGameService) SearchGames(ctx context.Context, input services.SearchInput) ([]domain.Game, error) {
	return f.searchFn(ctx, input)
}

type populatorFunc func(ctx context.Context) (domain.PopulateSummary, error)

func (f populatorFunc) Populate(ctx context.Context) (domain.PopulateSummary, error) {
	return f(ctx)
}

func newGameTestServer(games GameService, populator Populator) *echo.Echo {
	e := echo.New()
	NewGameRoutes(games, populator, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestGameRoutesListReturnsGames(t *testing.T) {
	t.Parallel()

	e := newGameTestServer(&fakeGameService{
		listFn: func(context.Context) ([]domain.Game, error) {
			return []domain.Game{{ID: 1, Name: "Alpha", Platform: "ios"}}, nil
		},
	}, nil)

	rec := doJSON(t, e, http.MethodGet, "/api/games", "")

	require.Equal(t, http.StatusOK, rec.Code)
	games := decodeBody[[]domain.Game](t, rec)
	require.Len(t, games, 1)
	assert.Equal(t, "Alpha", games[0].Name)
}

func TestGameRoutesListEmptyIsArray(t *testing.T) {
	t.Parallel()

	e := newGameTestServer(&fakeGameService{
		listFn: func(context.Context) ([]domain.Game, error) { return []domain.Game{}, nil },
	}, nil)

	rec := doJSON(t, e, http.MethodGet, "/api/games", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGameRoutesCreatePassesBody(t *testing.T) {
	t.Parallel()

	var got services.GameInput
	e := newGameTestServer(&fakeGameService{
		createFn: func(_ context.Context, input services.GameInput) (domain.Game, error) {
			got = input
			return domain.Game{ID: 9, Name: *input.Name, Platform: *input.Platform, IsPublished: true}, nil
		},
	}, nil)

	rec := doJSON(t, e, http.MethodPost, "/api/games", `{"name":"Test App","platform":"ios","storeId":"1234","isPublished":false}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Name)
	require.NotNil(t, got.IsPublished)
	assert.Equal(t, "Test App", *got.Name)
	assert.Equal(t, "1234", *got.StoreID)
	assert.False(t, *got.IsPublished)
	assert.Nil(t, got.BundleID)
	game := decodeBody[domain.Game](t, rec)
	assert.Equal(t, int64(9), game.ID)
}

func TestGameRoutesCreateRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	e := newGameTestServer(&fakeGameService{}, nil)

	rec := doJSON(t, e, http.MethodPost, "/api/games", `{"name":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid request body"}`, rec.Body.String())
}

func TestGameRoutesCreateValidationError(t *testing.T) {
	t.Parallel()

	e := newGameTestServer(&fakeGameService{
		createFn: func(context.Context, services.GameInput) (domain.Game, error) {
			return domain.Game{}, &domain.ValidationError{Field: "name", Message: "is required"}
		},
	}, nil)

	rec := doJSON(t, e, http.MethodPost, "/api/games", `{"platform":"ios"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "invalid name: is required", body["error"])
}

func TestGameRoutesUpdate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		body     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "ok", path: "/api/games/3", body: `{"appVersion":"2.0"}`, wantCode: http.StatusOK},
		{name: "non numeric id", path: "/api/games/abc", body: `{}`, wantCode: http.StatusBadRequest, wantErr: "invalid game id"},
		{name: "zero id", path: "/api/games/0", body: `{}`, wantCode: http.StatusBadRequest, wantErr: "invalid game id"},
		{name: "missing", path: "/api/games/404", body: `{"name":"x"}`, err: domain.ErrGameNotFound, wantCode: http.StatusNotFound, wantErr: "game not found"},
		{name: "malformed", path: "/api/games/3", body: `[`, wantCode: http.StatusBadRequest, wantErr: "invalid request body"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := newGameTestServer(&fakeGameService{
				updateFn: func(_ context.Context, id int64, input services.GameInput) (domain.Game, error) {
					if tc.err != nil {
						return domain.Game{}, tc.err
					}
					return domain.Game{ID: id, AppVersion: *input.AppVersion}, nil
				},
			}, nil)

			rec := doJSON(t, e, http.MethodPut, tc.path, tc.body)

			require.Equal(t, tc.wantCode, rec.Code, rec.Body.String())
			if tc.wantErr != "" {
				assert.Equal(t, tc.wantErr, decodeBody[map[string]string](t, rec)["error"])
				return
			}
			game := decodeBody[domain.Game](t, rec)
			assert.Equal(t, int64(3), game.ID)
			assert.Equal(t, "2.0", game.AppVersion)
		})
	}
}

func TestGameRoutesDeleteEchoesID(t *testing.T) {
	t.Parallel()

	var deleted int64
	e := newGameTestServer(&fakeGameService{
		deleteFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}, nil)

	rec := doJSON(t, e, http.MethodDelete, "/api/games/7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), deleted)
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
}

func TestGameRoutesDeleteMissing(t *testing.T) {
	t.Parallel()

	e := newGameTestServer(&fakeGameService{
		deleteFn: func(context.Context, int64) error { return domain.ErrGameNotFound },
	}, nil)

	rec := doJSON(t, e, http.MethodDelete, "/api/games/7", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGameRoutesSearchPassesFilters(t *testing.T) {
	t.Parallel()

	var got services.SearchInput
	e := newGameTestServer(&fakeGameService{
		searchFn: func(_ context.Context, input services.SearchInput) ([]domain.Game, error) {
			got = input
			return []domain.Game{{ID: 1, Name: "Candy Crush", Platform: "android"}}, nil
		},
	}, nil)

	rec := doJSON(t, e, http.MethodPost, "/api/games/search", `{"name":"candy","platform":"android"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.SearchInput{Name: "candy", Platform: "android"}, got)
	assert.Len(t, decodeBody[[]domain.Game](t, rec), 1)
}

func TestGameRoutesSearchStoreFailureIs500(t *testing.T) {
	t.Parallel()

	e := newGameTestServer(&fakeGameService{
		searchFn: func(context.Context, services.SearchInput) ([]domain.Game, error) {
			return nil, errors.New("search games: disk I/O error")
		},
	}, nil)

	rec := doJSON(t, e, http.MethodPost, "/api/games/search", `{}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "search games: disk I/O error", decodeBody[map[string]string](t, rec)["error"])
}

func TestGameRoutesPopulate(t *testing.T) {
	t.Parallel()

	t.Run("summary", func(t *testing.T) {
		t.Parallel()

		e := newGameTestServer(&fakeGameService{}, populatorFunc(func(context.Context) (domain.PopulateSummary, error) {
			return domain.PopulateSummary{Message: "Populated games", Created: 100, Skipped: 0, Warnings: []string{}}, nil
		}))

		rec := doJSON(t, e, http.MethodPost, "/api/games/populate", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Populated games","created":100,"skipped":0,"warnings":[]}`, rec.Body.String())
	})

	t.Run("all sources failed", func(t *testing.T) {
		t.Parallel()

		e := newGameTestServer(&fakeGameService{}, populatorFunc(func(context.Context) (domain.PopulateSummary, error) {
			return domain.PopulateSummary{}, &services.SourcesFailedError{Warnings: []string{"ios: timeout", "android: timeout"}}
		}))

		rec := doJSON(t, e, http.MethodPost, "/api/games/populate", "")

		require.Equal(t, http.StatusBadGateway, rec.Code)
		body := decodeBody[errorResponse](t, rec)
		assert.Equal(t, []string{"ios: timeout", "android: timeout"}, body.Warnings)
		assert.Contains(t, body.Error, "all feed sources failed")
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		e := newGameTestServer(&fakeGameService{}, populatorFunc(func(context.Context) (domain.PopulateSummary, error) {
			return domain.PopulateSummary{}, errors.New("list game keys: database is locked")
		}))

		rec := doJSON(t, e, http.MethodPost, "/api/games/populate", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
