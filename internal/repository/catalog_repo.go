package repository

import (
	"context"

	"gorm.io/gorm"

	"grandresort/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m domain.Room
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetRoom satisfies the booking module's RoomProvider.
func (r *RoomRepository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	return r.GetByID(ctx, id)
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("room_number").
		Find(&rooms).Error
	return rooms, err
}

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) Create(ctx context.Context, t *domain.Table) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TableRepository) Update(ctx context.Context, t *domain.Table) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TableRepository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	var m domain.Table
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetTable satisfies the booking module's TableProvider.
func (r *TableRepository) GetTable(ctx context.Context, id int64) (*domain.Table, error) {
	return r.GetByID(ctx, id)
}

func (r *TableRepository) List(ctx context.Context, location string) ([]domain.Table, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if location != "" {
		q = q.Where("location = ?", location)
	}

	var tables []domain.Table
	err := q.Order("table_number").Find(&tables).Error
	return tables, err
}

type GardenRepository struct {
	db *gorm.DB
}

func NewGardenRepository(db *gorm.DB) *GardenRepository {
	return &GardenRepository{db: db}
}

func (r *GardenRepository) Create(ctx context.Context, g *domain.Garden) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GardenRepository) Update(ctx context.Context, g *domain.Garden) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GardenRepository) GetByID(ctx context.Context, id int64) (*domain.Garden, error) {
	var m domain.Garden
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetGarden satisfies the booking module's GardenProvider.
func (r *GardenRepository) GetGarden(ctx context.Context, id int64) (*domain.Garden, error) {
	return r.GetByID(ctx, id)
}

func (r *GardenRepository) List(ctx context.Context) ([]domain.Garden, error) {
	var gardens []domain.Garden
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&gardens).Error
	return gardens, err
}
