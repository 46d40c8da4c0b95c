package turfcatalog

// Turf модель площадки из каталога
type Turf struct {
	ID           int64       `json:"id"`
	OwnerID      int64       `json:"owner_id"`
	Name         string      `json:"name"`
	City         string      `json:"city"`
	Sports       []string    `json:"sports"`
	PricePerHour float64     `json:"price_per_hour"`
	Availability WeekHours   `json:"availability"`
	IsActive     bool        `json:"is_active"`
}

// WeekHours расписание работы площадки по дням недели
type WeekHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы площадки на один день недели
type DaySchedule struct {
	Available bool    `json:"available"`
	OpenTime  *string `json:"open,omitempty"`  // "HH:MM"
	CloseTime *string `json:"close,omitempty"` // "HH:MM"
}

// OffersSport проверяет, что площадка поддерживает указанный вид спорта
func (t *Turf) OffersSport(sport string) bool {
	for _, s := range t.Sports {
		if s == sport {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от сервиса каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
