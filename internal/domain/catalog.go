package domain

import "time"

type Room struct {
	ID            int64   `json:"id" gorm:"primaryKey"`
	RoomNumber    string  `json:"room_number" gorm:"uniqueIndex;size:10;not null"`
	Name          string  `json:"name" gorm:"size:100;not null"`
	Description   string  `json:"description,omitempty" gorm:"type:text"`
	Type          string  `json:"type" gorm:"size:20"`
	Capacity      int     `json:"capacity" gorm:"not null"`
	PricePerNight float64 `json:"price_per_night" gorm:"not null;check:price_per_night >= 0"`
	IsAvailable   bool    `json:"is_available" gorm:"default:true"`
	IsActive      bool    `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }

type Table struct {
	ID           int64   `json:"id" gorm:"primaryKey"`
	TableNumber  string  `json:"table_number" gorm:"uniqueIndex;size:10;not null"`
	Location     string  `json:"location" gorm:"size:30;index"`
	Capacity     int     `json:"capacity" gorm:"not null"`
	MinimumSpend float64 `json:"minimum_spend" gorm:"check:minimum_spend >= 0"`
	IsAvailable  bool    `json:"is_available" gorm:"default:true"`
	IsActive     bool    `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Table) TableName() string { return "tables" }

type Garden struct {
	ID           int64   `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"size:100;not null"`
	Description  string  `json:"description,omitempty" gorm:"type:text"`
	Capacity     int     `json:"capacity" gorm:"not null"`
	PricePerHour float64 `json:"price_per_hour" gorm:"not null;check:price_per_hour >= 0"`
	MinimumHours int     `json:"minimum_hours" gorm:"default:2"`
	CleaningFee  float64 `json:"cleaning_fee" gorm:"check:cleaning_fee >= 0"`
	IsAvailable  bool    `json:"is_available" gorm:"default:true"`
	IsActive     bool    `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Garden) TableName() string { return "gardens" }

type MenuCategory struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Description  string `json:"description,omitempty" gorm:"type:text"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MenuCategory) TableName() string { return "menu_categories" }

type MenuItem struct {
	ID          int64   `json:"id" gorm:"primaryKey"`
	CategoryID  int64   `json:"category_id" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"size:100;not null"`
	Description string  `json:"description,omitempty" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null;check:price >= 0"`
	// Minutes needed by the kitchen. Feeds order EstimatedTime.
	PreparationTime int  `json:"preparation_time" gorm:"default:20"`
	IsAvailable     bool `json:"is_available" gorm:"default:true"`
	IsActive        bool `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category *MenuCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (MenuItem) TableName() string { return "menu_items" }
