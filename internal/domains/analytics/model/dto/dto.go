package dto

import (
	"math"

	"hotelops/internal/domains/analytics/model"
	"hotelops/shared/timezone"
)

type SummaryRequest struct {
	HotelID string `json:"hotel_id" validate:"omitempty,uuid"`
	Period  string `json:"period"   validate:"omitempty,oneof=7d 30d 90d 1y"`
}

type SummaryResponse struct {
	HotelID          string         `json:"hotel_id"`
	Period           string         `json:"period"`
	From             string         `json:"from"`
	To               string         `json:"to"`
	TotalBookings    int            `json:"total_bookings"`
	Revenue          float64        `json:"revenue"`
	AverageDailyRate float64        `json:"average_daily_rate"`
	OccupancyRate    float64        `json:"occupancy_rate"`
	TotalRooms       int            `json:"total_rooms"`
	BookingsByStatus map[string]int `json:"bookings_by_status"`
	RoomsByStatus    map[string]int `json:"rooms_by_status"`
}

type SummaryParams struct {
	HotelID  string
	Period   string
	Window   model.Window
	Stats    model.BookingStats
	Bookings []model.StatusCount
	Rooms    []model.StatusCount
}

func (r *SummaryResponse) FromModel(params SummaryParams) {
	r.HotelID = params.HotelID
	r.Period = params.Period
	r.From = timezone.FormatDate(params.Window.From)
	r.To = timezone.FormatDate(params.Window.To.AddDate(0, 0, -1))
	r.TotalBookings = params.Stats.TotalBookings
	r.Revenue = round(params.Stats.Revenue)

	r.BookingsByStatus = map[string]int{}
	for _, count := range params.Bookings {
		r.BookingsByStatus[count.Status] = count.Count
	}

	r.TotalRooms = 0
	r.RoomsByStatus = map[string]int{}

	for _, count := range params.Rooms {
		r.RoomsByStatus[count.Status] = count.Count
		r.TotalRooms += count.Count
	}

	r.AverageDailyRate = round(params.Stats.AverageDailyRate())
	r.OccupancyRate = math.Round(params.Stats.OccupancyRate(r.TotalRooms, params.Window.Days)*10000) / 10000
}

func round(amount float64) float64 {
	return math.Round(amount*100) / 100
}
