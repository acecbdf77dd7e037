package models

import "time"

// Truck and Trip are persisted for the fleet module; no endpoint reads them yet.
type Truck struct {
	ID       uint    `gorm:"primaryKey"`
	Capacity float64 `gorm:"not null"`
	Type     string  `gorm:"type:varchar(100)"`
	Fuel     float64
}

type Trip struct {
	ID        uint `gorm:"primaryKey"`
	StartDate time.Time
	EndDate   time.Time
	Distance  float64
}

// All lists every model handled by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&Tank{},
		&Truck{},
		&Trip{},
		&Warning{},
	}
}
