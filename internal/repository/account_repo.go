package repository

import (
	"context"
	"errors"

	"github.com/damoang/angple-search/internal/common"
	"github.com/damoang/angple-search/internal/domain"
	"gorm.io/gorm"
)

// AccountRepository account lookups needed by search
type AccountRepository interface {
	// FindByID returns common.ErrNotFound for missing or soft-deleted accounts
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}
