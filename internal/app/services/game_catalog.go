package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fr0stylo/gamecatalog/internal/app/domain"
	"github.com/fr0stylo/gamecatalog/internal/app/ports"
)

// GameInput is client-supplied game data. Nil fields were absent from the request.
type GameInput struct {
	PublisherID *string `json:"publisherId" validate:"omitempty,max=255"`
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Platform    *string `json:"platform" validate:"omitempty,max=100"`
	StoreID     *string `json:"storeId" validate:"omitempty,max=255"`
	BundleID    *string `json:"bundleId" validate:"omitempty,max=255"`
	AppVersion  *string `json:"appVersion" validate:"omitempty,max=100"`
	IsPublished *bool   `json:"isPublished"`
}

// SearchInput filters the catalog. Blank fields are ignored.
type SearchInput struct {
	Name     string `json:"name" validate:"max=255"`
	Platform string `json:"platform" validate:"max=100"`
}

// GameCatalogService implements the CRUD and search use cases.
type GameCatalogService struct {
	store    ports.GameStore
	validate *validator.Validate
}

// NewGameCatalogService constructs a catalog service.
func NewGameCatalogService(store ports.GameStore) *GameCatalogService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &GameCatalogService{
		store:    store,
		validate: validate,
	}
}

// ListGames returns every stored game.
func (s *GameCatalogService) ListGames(ctx context.Context) ([]domain.Game, error) {
	return s.store.List(ctx, domain.GameFilter{})
}

// CreateGame validates input and stores a new game. isPublished defaults to true.
func (s *GameCatalogService) CreateGame(ctx context.Context, input GameInput) (domain.Game, error) {
	if err := s.validateStruct(input); err != nil {
		return domain.Game{}, err
	}
	game := domain.Game{
		PublisherID: deref(input.PublisherID),
		Name:        strings.TrimSpace(deref(input.Name)),
		Platform:    strings.TrimSpace(deref(input.Platform)),
		StoreID:     deref(input.StoreID),
		BundleID:    deref(input.BundleID),
		AppVersion:  deref(input.AppVersion),
		IsPublished: true,
	}
	if input.IsPublished != nil {
		game.IsPublished = *input.IsPublished
	}
	if game.Name == "" {
		return domain.Game{}, &domain.ValidationError{Field: "name", Message: "is required"}
	}
	if game.Platform == "" {
		return domain.Game{}, &domain.ValidationError{Field: "platform", Message: "is required"}
	}
	return s.store.Create(ctx, game)
}

// UpdateGame applies the provided fields to an existing game.
func (s *GameCatalogService) UpdateGame(ctx context.Context, id int64, input GameInput) (domain.Game, error) {
	if id <= 0 {
		return domain.Game{}, &domain.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	if err := s.validateStruct(input); err != nil {
		return domain.Game{}, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return domain.Game{}, &domain.ValidationError{Field: "name", Message: "must not be blank"}
	}
	if input.Platform != nil && strings.TrimSpace(*input.Platform) == "" {
		return domain.Game{}, &domain.ValidationError{Field: "platform", Message: "must not be blank"}
	}
	return s.store.Update(ctx, id, domain.GameChanges{
		PublisherID: input.PublisherID,
		Name:        trimmed(input.Name),
		Platform:    trimmed(input.Platform),
		StoreID:     input.StoreID,
		BundleID:    input.BundleID,
		AppVersion:  input.AppVersion,
		IsPublished: input.IsPublished,
	})
}

// DeleteGame hard-deletes a game.
func (s *GameCatalogService) DeleteGame(ctx context.Context, id int64) error {
	if id <= 0 {
		return &domain.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return s.store.Delete(ctx, id)
}

// SearchGames matches name case-insensitively as a substring and platform exactly.
func (s *GameCatalogService) SearchGames(ctx context.Context, input SearchInput) ([]domain.Game, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Platform = strings.TrimSpace(input.Platform)
	if err := s.validateStruct(input); err != nil {
		return nil, err
	}
	games, err := s.store.List(ctx, domain.GameFilter{
		NameContains: input.Name,
		Platform:     input.Platform,
	})
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	return games, nil
}

// Ping checks the store is reachable.
func (s *GameCatalogService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *GameCatalogService) validateStruct(value any) error {
	err := s.validate.Struct(value)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &domain.ValidationError{Message: "invalid input", Err: err}
	}
	first := fieldErrs[0]
	return &domain.ValidationError{
		Field:   first.Field(),
		Message: describeFieldError(first),
		Err:     err,
	}
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	return &out
}
