package usecase

import (
	"fmt"
	"time"

	"barber-booking/internal/data/entity"
	"barber-booking/internal/slot"
	"barber-booking/pkg/utils"
)

// Rules are the shop policies shared by the services.
type Rules struct {
	Grid        slot.Grid
	Exclusivity entity.Exclusivity
	UPIHold     time.Duration
	WizardTTL   time.Duration
	Now         func() time.Time
}

func NewRules(cfg utils.ShopConfig) (Rules, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Rules{}, err
	}

	policy, err := entity.ParseExclusivity(cfg.Exclusivity)
	if err != nil {
		return Rules{}, err
	}

	if cfg.SlotMinutes <= 0 || cfg.OpenHour < 0 || cfg.LastSlotHour < cfg.OpenHour || cfg.LastSlotHour > 23 {
		return Rules{}, fmt.Errorf("invalid shop hours: open %d, last slot %d, slot %d min",
			cfg.OpenHour, cfg.LastSlotHour, cfg.SlotMinutes)
	}

	return Rules{
		Grid: slot.Grid{
			Location:     loc,
			OpenHour:     cfg.OpenHour,
			LastSlotHour: cfg.LastSlotHour,
			SlotMinutes:  cfg.SlotMinutes,
			HorizonDays:  cfg.HorizonDays,
		},
		Exclusivity: policy,
		UPIHold:     time.Duration(cfg.UPIHoldMinutes) * time.Minute,
		WizardTTL:   cfg.WizardTTL,
		Now:         time.Now,
	}, nil
}

func (r Rules) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
