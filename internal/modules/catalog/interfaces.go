package catalog

import (
	"context"

	"grandresort/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
}

type TableRepository interface {
	Create(ctx context.Context, t *domain.Table) error
	Update(ctx context.Context, t *domain.Table) error
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	List(ctx context.Context, location string) ([]domain.Table, error)
}

type GardenRepository interface {
	Create(ctx context.Context, g *domain.Garden) error
	Update(ctx context.Context, g *domain.Garden) error
	GetByID(ctx context.Context, id int64) (*domain.Garden, error)
	List(ctx context.Context) ([]domain.Garden, error)
}

type MenuRepository interface {
	CreateCategory(ctx context.Context, c *domain.MenuCategory) error
	ListCategories(ctx context.Context) ([]domain.MenuCategory, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) error
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	GetItemByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	ListItems(ctx context.Context, categoryID int64, availableOnly bool) ([]domain.MenuItem, error)
}
