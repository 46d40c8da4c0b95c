package get_turf_reservations

import (
	"strconv"
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
func ToServiceRequest(turfID, userID int64, statusStr, dateStr, includeInactiveStr string) (*models.GetTurfReservationsRequest, error) {
	req := &models.GetTurfReservationsRequest{
		TurfID: turfID,
		UserID: userID,
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
