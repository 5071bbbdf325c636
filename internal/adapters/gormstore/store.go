package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/fr0stylo/gamecatalog/internal/app/domain"
	"github.com/fr0stylo/gamecatalog/internal/app/ports"
	"github.com/fr0stylo/gamecatalog/internal/db"
)

var _ ports.GameStore = (*Store)(nil)

type gameRecord struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	PublisherID string `gorm:"size:255;not null"`
	Name        string `gorm:"size:255;not null"`
	Platform    string `gorm:"size:100;not null"`
	StoreID     string `gorm:"size:255;not null"`
	BundleID    string `gorm:"size:255;not null"`
	AppVersion  string `gorm:"size:100;not null"`
	IsPublished bool   `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (gameRecord) TableName() string {
	return "games"
}

// Store persists games through GORM on either supported dialect.
type Store struct {
	db        *gorm.DB
	nameMatch string
}

// NewStore wraps an open database.
func NewStore(database *db.Database) *Store {
	return &Store{db: database.ORM(), nameMatch: database.ContainsFoldClause("name")}
}

// List returns games matching filter in id order.
func (s *Store) List(ctx context.Context, filter domain.GameFilter) ([]domain.Game, error) {
	query := s.db.WithContext(ctx).Model(&gameRecord{})
	if name := strings.TrimSpace(filter.NameContains); name != "" {
		query = query.Where(s.nameMatch, "%"+escapeLike(strings.ToLower(name))+"%")
	}
	if platform := strings.TrimSpace(filter.Platform); platform != "" {
		query = query.Where("platform = ?", platform)
	}

	var records []gameRecord
	if err := query.Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	games := make([]domain.Game, 0, len(records))
	for _, record := range records {
		games = append(games, record.toDomain())
	}
	return games, nil
}

// Get loads one game by id.
func (s *Store) Get(ctx context.Context, id int64) (domain.Game, error) {
	var record gameRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Game{}, domain.ErrGameNotFound
	}
	if err != nil {
		return domain.Game{}, fmt.Errorf("get game %d: %w", id, err)
	}
	return record.toDomain(), nil
}

// Create inserts game and returns it with id and timestamps assigned.
func (s *Store) Create(ctx context.Context, game domain.Game) (domain.Game, error) {
	record := recordFromDomain(game)
	record.ID = 0
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isConstraintViolation(err) {
			return domain.Game{}, &domain.ValidationError{Message: "game violates a store constraint", Err: err}
		}
		return domain.Game{}, fmt.Errorf("create game: %w", err)
	}
	return record.toDomain(), nil
}

// Update applies the set fields of changes to game id.
func (s *Store) Update(ctx context.Context, id int64, changes domain.GameChanges) (domain.Game, error) {
	if changes.Empty() {
		return s.Get(ctx, id)
	}

	columns := map[string]any{"updated_at": time.Now().UTC()}
	setColumn(columns, "publisher_id", changes.PublisherID)
	setColumn(columns, "name", changes.Name)
	setColumn(columns, "platform", changes.Platform)
	setColumn(columns, "store_id", changes.StoreID)
	setColumn(columns, "bundle_id", changes.BundleID)
	setColumn(columns, "app_version", changes.AppVersion)
	if changes.IsPublished != nil {
		columns["is_published"] = *changes.IsPublished
	}

	result := s.db.WithContext(ctx).Model(&gameRecord{}).Where("id = ?", id).Updates(columns)
	if err := result.Error; err != nil {
		if isConstraintViolation(err) {
			return domain.Game{}, &domain.ValidationError{Message: "game violates a store constraint", Err: err}
		}
		return domain.Game{}, fmt.Errorf("update game %d: %w", id, err)
	}
	if result.RowsAffected == 0 {
		return domain.Game{}, domain.ErrGameNotFound
	}
	return s.Get(ctx, id)
}

// Delete hard-deletes game id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&gameRecord{})
	if err := result.Error; err != nil {
		return fmt.Errorf("delete game %d: %w", id, err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

// ListKeys returns the (storeId, platform) pair of every stored game.
func (s *Store) ListKeys(ctx context.Context) ([]domain.GameKey, error) {
	var rows []struct {
		StoreID  string
		Platform string
	}
	err := s.db.WithContext(ctx).
		Model(&gameRecord{}).
		Select("store_id", "platform").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list game keys: %w", err)
	}
	keys := make([]domain.GameKey, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, domain.GameKey{StoreID: row.StoreID, Platform: row.Platform})
	}
	return keys, nil
}

// Ping checks the database answers queries.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}

func (r gameRecord) toDomain() domain.Game {
	return domain.Game{
		ID:          r.ID,
		PublisherID: r.PublisherID,
		Name:        r.Name,
		Platform:    r.Platform,
		StoreID:     r.StoreID,
		BundleID:    r.BundleID,
		AppVersion:  r.AppVersion,
		IsPublished: r.IsPublished,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func recordFromDomain(game domain.Game) gameRecord {
	return gameRecord{
		ID:          game.ID,
		PublisherID: game.PublisherID,
		Name:        game.Name,
		Platform:    game.Platform,
		StoreID:     game.StoreID,
		BundleID:    game.BundleID,
		AppVersion:  game.AppVersion,
		IsPublished: game.IsPublished,
	}
}

func setColumn(columns map[string]any, name string, value *string) {
	if value != nil {
		columns[name] = *value
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}
