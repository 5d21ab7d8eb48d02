package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"grandresort/internal/database"
	"grandresort/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "grandresort.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM payment_status_events")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM order_status_events")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM booking_status_events")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM menu_items")
	db.Exec("DELETE FROM menu_categories")
	db.Exec("DELETE FROM gardens")
	db.Exec("DELETE FROM tables")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@grandresort.test",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Resort Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@grandresort.test / admin123")

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	staff := domain.User{
		Email:        "frontdesk@grandresort.test",
		PasswordHash: string(staffHash),
		Role:         domain.RoleStaff,
		Name:         "Front Desk",
	}
	db.Create(&staff)
	log.Println("Staff created: frontdesk@grandresort.test / staff123")

	guestEmails := []string{"amelia@example.com", "noah@example.com", "zara@example.com"}
	for i, email := range guestEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
		guest := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleCustomer,
			Name:         fmt.Sprintf("Guest %d", i+1),
			Phone:        fmt.Sprintf("+1 555 010 %04d", i+1),
		}
		db.Create(&guest)
	}

	log.Println("Creating rooms...")
	rooms := []domain.Room{
		{RoomNumber: "101", Name: "Garden View Standard", Type: "standard", Capacity: 2, PricePerNight: 95, IsAvailable: true, IsActive: true},
		{RoomNumber: "102", Name: "Garden View Standard", Type: "standard", Capacity: 2, PricePerNight: 95, IsAvailable: true, IsActive: true},
		{RoomNumber: "201", Name: "Sea View Deluxe", Type: "deluxe", Capacity: 3, PricePerNight: 160, IsAvailable: true, IsActive: true},
		{RoomNumber: "202", Name: "Sea View Deluxe", Type: "deluxe", Capacity: 3, PricePerNight: 160, IsAvailable: true, IsActive: true},
		{RoomNumber: "301", Name: "Royal Suite", Type: "suite", Capacity: 5, PricePerNight: 420, IsAvailable: true, IsActive: true},
	}
	for i := range rooms {
		db.Create(&rooms[i])
	}

	log.Println("Creating tables...")
	tables := []domain.Table{
		{TableNumber: "T1", Location: "indoor", Capacity: 2, MinimumSpend: 15, IsAvailable: true, IsActive: true},
		{TableNumber: "T2", Location: "indoor", Capacity: 4, MinimumSpend: 20, IsAvailable: true, IsActive: true},
		{TableNumber: "T3", Location: "terrace", Capacity: 4, MinimumSpend: 25, IsAvailable: true, IsActive: true},
		{TableNumber: "T4", Location: "terrace", Capacity: 6, MinimumSpend: 30, IsAvailable: true, IsActive: true},
		{TableNumber: "T5", Location: "rooftop", Capacity: 8, MinimumSpend: 50, IsAvailable: true, IsActive: true},
	}
	for i := range tables {
		db.Create(&tables[i])
	}

	log.Println("Creating gardens...")
	gardens := []domain.Garden{
		{Name: "Rose Garden", Description: "Walled garden with a fountain, seats up to 120.", Capacity: 120, PricePerHour: 50, MinimumHours: 2, CleaningFee: 25, IsAvailable: true, IsActive: true},
		{Name: "Palm Lawn", Description: "Open lawn by the beach, seats up to 300.", Capacity: 300, PricePerHour: 120, MinimumHours: 3, CleaningFee: 80, IsAvailable: true, IsActive: true},
	}
	for i := range gardens {
		db.Create(&gardens[i])
	}

	log.Println("Creating menu...")
	categories := []domain.MenuCategory{
		{Name: "Starters", DisplayOrder: 1, IsActive: true},
		{Name: "Mains", DisplayOrder: 2, IsActive: true},
		{Name: "Desserts", DisplayOrder: 3, IsActive: true},
		{Name: "Drinks", DisplayOrder: 4, IsActive: true},
	}
	for i := range categories {
		db.Create(&categories[i])
	}

	items := []domain.MenuItem{
		{CategoryID: categories[0].ID, Name: "Tomato Bruschetta", Price: 7.5, PreparationTime: 10, IsAvailable: true, IsActive: true},
		{CategoryID: categories[0].ID, Name: "Grilled Halloumi", Price: 9.0, PreparationTime: 12, IsAvailable: true, IsActive: true},
		{CategoryID: categories[1].ID, Name: "Margherita Pizza", Price: 12.0, PreparationTime: 25, IsAvailable: true, IsActive: true},
		{CategoryID: categories[1].ID, Name: "Grilled Sea Bass", Price: 24.0, PreparationTime: 30, IsAvailable: true, IsActive: true},
		{CategoryID: categories[1].ID, Name: "Club Sandwich", Price: 11.0, PreparationTime: 15, IsAvailable: true, IsActive: true},
		{CategoryID: categories[2].ID, Name: "Tiramisu", Price: 8.0, PreparationTime: 5, IsAvailable: true, IsActive: true},
		{CategoryID: categories[3].ID, Name: "Fresh Orange Juice", Price: 5.0, PreparationTime: 5, IsAvailable: true, IsActive: true},
	}
	for i := range items {
		db.Create(&items[i])
	}

	log.Println("Seed complete.")
}
