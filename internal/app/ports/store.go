package ports

import (
	"context"

	"github.com/fr0stylo/gamecatalog/internal/app/domain"
)

// GameStore is the persistence gateway for game records.
// It is backend-agnostic: the GORM adapter implements it for sqlite and postgres.
type GameStore interface {
	List(ctx context.Context, filter domain.GameFilter) ([]domain.Game, error)
	Get(ctx context.Context, id int64) (domain.Game, error)
	Create(ctx context.Context, game domain.Game) (domain.Game, error)
	Update(ctx context.Context, id int64, changes domain.GameChanges) (domain.Game, error)
	Delete(ctx context.Context, id int64) error
	ListKeys(ctx context.Context) ([]domain.GameKey, error)
	Ping(ctx context.Context) error
}
