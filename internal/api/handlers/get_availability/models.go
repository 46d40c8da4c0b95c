package get_availability

import (
	"github.com/m04kA/Turf-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/Turf-ReservationService/internal/usecase/get_availability"
)

// IntervalResponse занятый или свободный интервал в HTTP ответе
type IntervalResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TurfID    int64              `json:"turfId"`
	Date      string             `json:"date"`
	Open      bool               `json:"open"`
	OpenTime  *string            `json:"openTime,omitempty"`
	CloseTime *string            `json:"closeTime,omitempty"`
	Booked    []IntervalResponse `json:"booked"`
	Free      []IntervalResponse `json:"free"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		TurfID: resp.TurfID,
		Date:   resp.Date.Format(domain.DateFormat),
		Open:   resp.Open,
		Booked: toIntervals(resp.Booked),
		Free:   toIntervals(resp.Free),
	}

	if resp.OpenTime != nil {
		open := resp.OpenTime.String()
		result.OpenTime = &open
	}
	if resp.CloseTime != nil {
		close := resp.CloseTime.String()
		result.CloseTime = &close
	}

	return result
}

func toIntervals(intervals []getAvailability.Interval) []IntervalResponse {
	result := make([]IntervalResponse, len(intervals))
	for i, interval := range intervals {
		result[i] = IntervalResponse{
			StartTime: interval.StartTime.String(),
			EndTime:   interval.EndTime.String(),
		}
	}
	return result
}
