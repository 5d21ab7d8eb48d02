package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"grandresort/internal/domain"
)

type Service struct {
	rooms   RoomRepository
	tables  TableRepository
	gardens GardenRepository
	menu    MenuRepository
}

func NewService(rooms RoomRepository, tables TableRepository, gardens GardenRepository, menu MenuRepository) *Service {
	return &Service{rooms: rooms, tables: tables, gardens: gardens, menu: menu}
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return room, nil
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	room := &domain.Room{
		RoomNumber:    req.RoomNumber,
		Name:          req.Name,
		Description:   req.Description,
		Type:          req.Type,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		IsAvailable:   true,
		IsActive:      true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.PricePerNight != nil {
		room.PricePerNight = *req.PricePerNight
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) ListTables(ctx context.Context, location string) ([]domain.Table, error) {
	return s.tables.List(ctx, location)
}

func (s *Service) GetTable(ctx context.Context, id int64) (*domain.Table, error) {
	t, err := s.tables.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return t, nil
}

func (s *Service) CreateTable(ctx context.Context, req CreateTableRequest) (*domain.Table, error) {
	t := &domain.Table{
		TableNumber:  req.TableNumber,
		Location:     req.Location,
		Capacity:     req.Capacity,
		MinimumSpend: req.MinimumSpend,
		IsAvailable:  true,
		IsActive:     true,
	}
	if err := s.tables.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTable(ctx context.Context, id int64, req UpdateTableRequest) (*domain.Table, error) {
	t, err := s.tables.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}

	if req.Location != nil {
		t.Location = *req.Location
	}
	if req.MinimumSpend != nil {
		t.MinimumSpend = *req.MinimumSpend
	}
	if req.IsAvailable != nil {
		t.IsAvailable = *req.IsAvailable
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.tables.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListGardens(ctx context.Context) ([]domain.Garden, error) {
	return s.gardens.List(ctx)
}

func (s *Service) GetGarden(ctx context.Context, id int64) (*domain.Garden, error) {
	g, err := s.gardens.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return g, nil
}

func (s *Service) CreateGarden(ctx context.Context, req CreateGardenRequest) (*domain.Garden, error) {
	minHours := req.MinimumHours
	if minHours == 0 {
		minHours = 2
	}

	g := &domain.Garden{
		Name:         req.Name,
		Description:  req.Description,
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
		MinimumHours: minHours,
		CleaningFee:  req.CleaningFee,
		IsAvailable:  true,
		IsActive:     true,
	}
	if err := s.gardens.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) UpdateGarden(ctx context.Context, id int64, req UpdateGardenRequest) (*domain.Garden, error) {
	g, err := s.gardens.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}

	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.PricePerHour != nil {
		g.PricePerHour = *req.PricePerHour
	}
	if req.MinimumHours != nil {
		g.MinimumHours = *req.MinimumHours
	}
	if req.CleaningFee != nil {
		g.CleaningFee = *req.CleaningFee
	}
	if req.IsAvailable != nil {
		g.IsAvailable = *req.IsAvailable
	}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}

	if err := s.gardens.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	return s.menu.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.MenuCategory, error) {
	c := &domain.MenuCategory{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if err := s.menu.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListMenuItems(ctx context.Context, categoryID int64, availableOnly bool) ([]domain.MenuItem, error) {
	return s.menu.ListItems(ctx, categoryID, availableOnly)
}

func (s *Service) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	item, err := s.menu.GetItemByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return item, nil
}

func (s *Service) CreateMenuItem(ctx context.Context, req CreateMenuItemRequest) (*domain.MenuItem, error) {
	prep := req.PreparationTime
	if prep == 0 {
		prep = 20
	}

	item := &domain.MenuItem{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		PreparationTime: prep,
		IsAvailable:     true,
		IsActive:        true,
	}
	if err := s.menu.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, id int64, req UpdateMenuItemRequest) (*domain.MenuItem, error) {
	item, err := s.menu.GetItemByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.PreparationTime != nil {
		item.PreparationTime = *req.PreparationTime
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.menu.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) mapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
