package repository

import (
	"context"

	"gorm.io/gorm"

	"grandresort/internal/domain"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) CreateCategory(ctx context.Context, c *domain.MenuCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *MenuRepository) ListCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	var cats []domain.MenuCategory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order, name").
		Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *MenuRepository) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *MenuRepository) GetItemByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem satisfies the order module's MenuProvider.
func (r *MenuRepository) GetItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return r.GetItemByID(ctx, id)
}

func (r *MenuRepository) ListItems(ctx context.Context, categoryID int64, availableOnly bool) ([]domain.MenuItem, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}

	var items []domain.MenuItem
	err := q.Order("name").Find(&items).Error
	return items, err
}
