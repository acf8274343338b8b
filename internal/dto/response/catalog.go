package response

import (
	"barber-booking/internal/data/entity"
)

type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

type BarberResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Age             int      `json:"age"`
	ExperienceYears int      `json:"experienceYears"`
	Phone           string   `json:"phone"`
	Specialties     []string `json:"specialties"`
	Description     string   `json:"description"`
}

type ChairResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func ServiceToResponse(s *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price.StringFixed(2),
		DurationMinutes: s.DurationMinutes,
	}
}

func BarberToResponse(b *entity.Barber) BarberResponse {
	specialties := b.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return BarberResponse{
		ID:              b.ID,
		Name:            b.Name,
		Age:             b.Age,
		ExperienceYears: b.ExperienceYears,
		Phone:           b.Phone,
		Specialties:     specialties,
		Description:     b.Description,
	}
}

func ChairToResponse(c *entity.Chair) ChairResponse {
	return ChairResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
