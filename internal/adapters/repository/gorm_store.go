package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/database"
	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

const storeName = "quote-store"

// GormStore is a PostgreSQL-backed ports.QuoteStore.
type GormStore struct {
	db *gorm.DB
}

var (
	_ ports.QuoteStore    = (*GormStore)(nil)
	_ ports.HealthChecker = (*GormStore)(nil)
)

// NewGormStore constructs the store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Create inserts a new entry.
func (s *GormStore) Create(ctx context.Context, draft domain.QuoteDraft) (*domain.QuoteEntry, error) {
	row := toRow(draft)

	err := s.db.WithContext(ctx).Create(row).Error
	if err != nil {
		return nil, domain.NewUnavailableError(storeName, err.Error())
	}

	return fromRow(row), nil
}

// GetByID loads an entry. Ids that are not UUIDs cannot exist and are
// reported as not found without a query.
func (s *GormStore) GetByID(ctx context.Context, id string) (*domain.QuoteEntry, error) {
	key, ok := canonicalID(id)
	if !ok {
		return nil, domain.NewNotFoundError("quote", id)
	}

	var row database.QuoteImage

	err := s.db.WithContext(ctx).Where("id = ?", key).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("quote", id)
		}

		return nil, domain.NewUnavailableError(storeName, err.Error())
	}

	return fromRow(&row), nil
}

// Name implements ports.HealthChecker.
func (s *GormStore) Name() string {
	return storeName
}

// Check implements ports.HealthChecker by pinging the database.
func (s *GormStore) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func toRow(draft domain.QuoteDraft) *database.QuoteImage {
	row := &database.QuoteImage{Quote: draft.Quote}
	if draft.Author != "" {
		author := draft.Author
		row.Author = &author
	}

	return row
}

func fromRow(row *database.QuoteImage) *domain.QuoteEntry {
	entry := &domain.QuoteEntry{
		ID:        row.ID,
		Quote:     row.Quote,
		CreatedAt: row.CreatedAt,
	}
	if row.Author != nil {
		entry.Author = *row.Author
	}

	return entry
}
