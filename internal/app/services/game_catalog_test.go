package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fr0stylo/gamecatalog/internal/app/domain"
	portmocks "github.com/fr0stylo/gamecatalog/internal/app/ports/mocks"
)

func ptr[T any](value T) *T {
	return &value
}

func TestGameCatalogService_CreateGame_DefaultsPublished(t *testing.T) {
	store := portmocks.NewMockGameStore(t)
	svc := NewGameCatalogService(store)

	store.EXPECT().Create(mock.Anything, mock.MatchedBy(func(game domain.Game) bool {
		return game.Name == "Test App" && game.Platform == "ios" && game.IsPublished && game.StoreID == "1234"
	})).RunAndReturn(func(_ context.Context, game domain.Game) (domain.Game, error) {
		game.ID = 1
		return game, nil
	})

	game, err := svc.CreateGame(context.Background(), GameInput{
		Name:     ptr(" Test App "),
		Platform: ptr("ios"),
		StoreID:  ptr("1234"),
	})
	if err != nil {
		t.Fatalf("CreateGame returned error: %v", err)
	}
	if game.ID != 1 || !game.IsPublished {
		t.Fatalf("unexpected game: %+v", game)
	}
}

func TestGameCatalogService_CreateGame_KeepsExplicitUnpublished(t *testing.T) {
	store := portmocks.NewMockGameStore(t)
	svc := NewGameCatalogService(store)

	store.EXPECT().Create(mock.Anything, mock.MatchedBy(func(game domain.Game) bool {
		return !game.IsPublished
	})).Return(domain.Game{ID: 2}, nil)

	_, err := svc.CreateGame(context.Background(), GameInput{
		Name:        ptr("Hidden"),
		Platform:    ptr("android"),
		IsPublished: ptr(false),
	})
	require.NoError(t, err)
}

func TestGameCatalogService_CreateGame_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input GameInput
		field string
	}{
		{name: "missing name", input: GameInput{Platform: ptr("ios")}, field: "name"},
		{name: "blank platform", input: GameInput{Name: ptr("x"), Platform: ptr("   ")}, field: "platform"},
		{name: "long name", input: GameInput{Name: ptr(strings.Repeat("n", 256)), Platform: ptr("ios")}, field: "name"},
		{name: "long version", input: GameInput{Name: ptr("x"), Platform: ptr("ios"), AppVersion: ptr(strings.Repeat("1", 101))}, field: "appVersion"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := portmocks.NewMockGameStore(t)
			svc := NewGameCatalogService(store)

			_, err := svc.CreateGame(context.Background(), tc.input)

			var validationErr *domain.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if validationErr.Field != tc.field {
				t.Fatalf("unexpected field: got=%q want=%q", validationErr.Field, tc.field)
			}
			if ClassifyError(err) != ErrorInvalidInput {
				t.Fatalf("expected invalid input classification, got %q", ClassifyError(err))
			}
		})
	}
}

func TestGameCatalogService_UpdateGame_PassesOnlyProvidedFields(t *testing.T) {
	store := portmocks.NewMockGameStore(t)
	svc := NewGameCatalogService(store)

	store.EXPECT().Update(mock.Anything, int64(7), mock.MatchedBy(func(changes domain.GameChanges) bool {
		return changes.Name != nil && *changes.Name == "Renamed" &&
			changes.IsPublished != nil && !*changes.IsPublished &&
			changes.Platform == nil && changes.StoreID == nil
	})).Return(domain.Game{ID: 7, Name: "Renamed"}, nil)

	game, err := svc.UpdateGame(context.Background(), 7, GameInput{Name: ptr(" Renamed "), IsPublished: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", game.Name)
}

func TestGameCatalogService_UpdateGame_NotFound(t *testing.T) {
	store := portmocks.NewMockGameStore(t)
	svc := NewGameCatalogService(store)

	store.EXPECT().Update(mock.Anything, int64(9), mock.Anything).Return(domain.Game{}, domain.ErrGameNotFound)

	_, err := svc.UpdateGame(context.Background(), 9, GameInput{Name: ptr("x")})
	assert.Equal(t, ErrorNotFound, ClassifyError(err))
}

func TestGameCatalogService_UpdateGame_RejectsBadInput(t *testing.T) {
	store := portmocks.NewMockGameStore(t)
	svc := NewGameCatalogService(store)

	_, err := svc.UpdateGame(context.Background(), 0, GameInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidGame)

	_, err = svc.UpdateGame(context.Background(), 3, GameInput{Name: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidGame)
}

func TestGameCatalogService_DeleteGame(t *testing.T) {
	store := portmocks.NewMockGameStore(t)
	svc := NewGameCatalogService(store)

	store.EXPECT().Delete(mock.Anything, int64(4)).Return(nil)
	store.EXPECT().Delete(mock.Anything, int64(5)).Return(domain.ErrGameNotFound)

	require.NoError(t, svc.DeleteGame(context.Background(), 4))
	assert.Equal(t, ErrorNotFound, ClassifyError(svc.DeleteGame(context.Background(), 5)))
	assert.Equal(t, ErrorInvalidInput, ClassifyError(svc.DeleteGame(context.Background(), -1)))
}

func TestGameCatalogService_SearchGames_TrimsFilters(t *testing.T) {
	store := portmocks.NewMockGameStore(t)
	svc := NewGameCatalogService(store)

	store.EXPECT().List(mock.Anything, domain.GameFilter{NameContains: "SearchTest", Platform: "ios"}).
		Return([]domain.Game{{ID: 1, Name: "SearchTest Game", Platform: "ios"}}, nil)

	games, err := svc.SearchGames(context.Background(), SearchInput{Name: "  SearchTest ", Platform: " ios "})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "SearchTest Game", games[0].Name)
}

func TestGameCatalogService_SearchGames_EnforcesLengthLimits(t *testing.T) {
	store := portmocks.NewMockGameStore(t)
	svc := NewGameCatalogService(store)

	store.EXPECT().List(mock.Anything, mock.Anything).Return([]domain.Game{}, nil).Once()

	_, err := svc.SearchGames(context.Background(), SearchInput{Name: strings.Repeat("a", 255)})
	require.NoError(t, err, "255 characters is within the limit")

	_, err = svc.SearchGames(context.Background(), SearchInput{Name: strings.Repeat("a", 256)})
	assert.ErrorIs(t, err, domain.ErrInvalidGame)

	_, err = svc.SearchGames(context.Background(), SearchInput{Platform: strings.Repeat("p", 101)})
	assert.ErrorIs(t, err, domain.ErrInvalidGame)
}

func TestGameCatalogService_SearchGames_WrapsStoreErrors(t *testing.T) {
	store := portmocks.NewMockGameStore(t)
	svc := NewGameCatalogService(store)

	store.EXPECT().List(mock.Anything, domain.GameFilter{}).Return(nil, errors.New("boom"))

	_, err := svc.SearchGames(context.Background(), SearchInput{})
	require.Error(t, err)
	assert.Equal(t, ErrorUnknown, ClassifyError(err))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{err: nil, want: ErrorUnknown},
		{err: &domain.ValidationError{Field: "name", Message: "is required"}, want: ErrorInvalidInput},
		{err: domain.ErrGameNotFound, want: ErrorNotFound},
		{err: &SourcesFailedError{Warnings: []string{"ios: down"}}, want: ErrorUpstream},
		{err: errors.New("boom"), want: ErrorUnknown},
	}
	for _, tc := range tests {
		if got := ClassifyError(tc.err); got != tc.want {
			t.Fatalf("ClassifyError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
