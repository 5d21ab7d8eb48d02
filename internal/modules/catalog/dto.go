package catalog

type CreateRoomRequest struct {
	RoomNumber    string  `json:"room_number" binding:"required,max=10"`
	Name          string  `json:"name" binding:"required,max=100"`
	Description   string  `json:"description"`
	Type          string  `json:"type" binding:"max=20"`
	Capacity      int     `json:"capacity" binding:"required,min=1"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
}

type UpdateRoomRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=100"`
	Description   *string  `json:"description"`
	PricePerNight *float64 `json:"price_per_night" binding:"omitempty,gt=0"`
	IsAvailable   *bool    `json:"is_available"`
	IsActive      *bool    `json:"is_active"`
}

type CreateTableRequest struct {
	TableNumber  string  `json:"table_number" binding:"required,max=10"`
	Location     string  `json:"location" binding:"max=30"`
	Capacity     int     `json:"capacity" binding:"required,min=1"`
	MinimumSpend float64 `json:"minimum_spend" binding:"min=0"`
}

type UpdateTableRequest struct {
	Location     *string  `json:"location" binding:"omitempty,max=30"`
	MinimumSpend *float64 `json:"minimum_spend" binding:"omitempty,min=0"`
	IsAvailable  *bool    `json:"is_available"`
	IsActive     *bool    `json:"is_active"`
}

type CreateGardenRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Description  string  `json:"description"`
	Capacity     int     `json:"capacity" binding:"required,min=1"`
	PricePerHour float64 `json:"price_per_hour" binding:"required,gt=0"`
	MinimumHours int     `json:"minimum_hours" binding:"min=0"`
	CleaningFee  float64 `json:"cleaning_fee" binding:"min=0"`
}

type UpdateGardenRequest struct {
	Description  *string  `json:"description"`
	PricePerHour *float64 `json:"price_per_hour" binding:"omitempty,gt=0"`
	MinimumHours *int     `json:"minimum_hours" binding:"omitempty,min=0"`
	CleaningFee  *float64 `json:"cleaning_fee" binding:"omitempty,min=0"`
	IsAvailable  *bool    `json:"is_available"`
	IsActive     *bool    `json:"is_active"`
}

type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required,max=50"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

type CreateMenuItemRequest struct {
	CategoryID      int64   `json:"category_id" binding:"required"`
	Name            string  `json:"name" binding:"required,max=100"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	PreparationTime int     `json:"preparation_time" binding:"min=0"`
}

type UpdateMenuItemRequest struct {
	Name            *string  `json:"name" binding:"omitempty,max=100"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price" binding:"omitempty,gt=0"`
	PreparationTime *int     `json:"preparation_time" binding:"omitempty,min=0"`
	IsAvailable     *bool    `json:"is_available"`
	IsActive        *bool    `json:"is_active"`
}
