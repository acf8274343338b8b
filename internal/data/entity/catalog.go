package entity

import (
	"github.com/shopspring/decimal"
)

// Service is a bookable catalog item.
type Service struct {
	Base
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	Price           decimal.Decimal `db:"price"`
	DurationMinutes int             `db:"duration_minutes"`
	IsActive        bool            `db:"is_active"`
}

type Barber struct {
	Base
	Name            string   `db:"name"`
	Age             int      `db:"age"`
	ExperienceYears int      `db:"experience_years"`
	Phone           string   `db:"phone"`
	Specialties     []string `db:"specialties"`
	Description     string   `db:"description"`
	IsActive        bool     `db:"is_active"`
}

type Chair struct {
	Base
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
}
