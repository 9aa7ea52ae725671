package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	"hotelops/infras/otel/mocks"
	analyticsMocks "hotelops/internal/domains/analytics/mocks"
	"hotelops/internal/domains/analytics/model"
	"hotelops/internal/domains/analytics/model/dto"
	"hotelops/internal/domains/analytics/service"
	"hotelops/permissions"
	"hotelops/shared/cache"
	cacheMocks "hotelops/shared/cache/mocks"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
)

func asPrincipal(role, hotelID string) context.Context {
	return permissions.WithPrincipal(context.Background(), permissions.Principal{
		UserID:       "caller",
		Role:         role,
		HotelID:      hotelID,
		Capabilities: permissions.Resolve(role, &permissions.StaffFlags{CanViewReports: true}),
	})
}

func TestAnalyticsService_Summary(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.SummaryRequest
		setupMock func(repo *analyticsMocks.MockAnalytics)
		wantCode  int
		check     func(t *testing.T, res dto.SummaryResponse)
	}{
		{
			name: "default period for own hotel",
			ctx:  asPrincipal(constant.RoleHotelAdmin, "hotel-1"),
			setupMock: func(repo *analyticsMocks.MockAnalytics) {
				repo.EXPECT().BookingStats(gomock.Any(), "hotel-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, window model.Window) (model.BookingStats, error) {
						assert.Equal(t, 30, window.Days)
						assert.Equal(t, window.To.AddDate(0, 0, -30), window.From)

						return model.BookingStats{TotalBookings: 5, Revenue: 1500, StayNights: 12, OccupiedNights: 12}, nil
					})
				repo.EXPECT().BookingsByStatus(gomock.Any(), "hotel-1", gomock.Any()).Return([]model.StatusCount{
					{Status: "confirmed", Count: 4},
					{Status: "cancelled", Count: 1},
				}, nil)
				repo.EXPECT().RoomsByStatus(gomock.Any(), "hotel-1").Return([]model.StatusCount{
					{Status: "available", Count: 3},
					{Status: "maintenance", Count: 1},
				}, nil)
			},
			check: func(t *testing.T, res dto.SummaryResponse) {
				t.Helper()

				assert.Equal(t, model.Period30Days, res.Period)
				assert.Equal(t, 5, res.TotalBookings)
				assert.InDelta(t, 125.0, res.AverageDailyRate, 0.001)
				assert.InDelta(t, 0.1, res.OccupancyRate, 0.0001)
				assert.Equal(t, 4, res.TotalRooms)
				assert.Equal(t, 1, res.BookingsByStatus["cancelled"])
			},
		},
		{
			name: "empty hotel has zero rates",
			ctx:  asPrincipal(constant.RoleSuperAdmin, ""),
			req:  dto.SummaryRequest{HotelID: "hotel-9", Period: model.Period7Days},
			setupMock: func(repo *analyticsMocks.MockAnalytics) {
				repo.EXPECT().BookingStats(gomock.Any(), "hotel-9", gomock.Any()).Return(model.BookingStats{}, nil)
				repo.EXPECT().BookingsByStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.StatusCount{}, nil)
				repo.EXPECT().RoomsByStatus(gomock.Any(), gomock.Any()).Return([]model.StatusCount{}, nil)
			},
			check: func(t *testing.T, res dto.SummaryResponse) {
				t.Helper()

				assert.Zero(t, res.AverageDailyRate)
				assert.Zero(t, res.OccupancyRate)
				assert.NotNil(t, res.RoomsByStatus)
			},
		},
		{
			name:      "super admin without hotel",
			ctx:       asPrincipal(constant.RoleSuperAdmin, ""),
			setupMock: func(*analyticsMocks.MockAnalytics) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unknown period",
			ctx:       asPrincipal(constant.RoleHotelAdmin, "hotel-1"),
			req:       dto.SummaryRequest{Period: "2w"},
			setupMock: func(*analyticsMocks.MockAnalytics) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "other hotel",
			ctx:       asPrincipal(constant.RoleStaff, "hotel-1"),
			req:       dto.SummaryRequest{HotelID: "hotel-2"},
			setupMock: func(*analyticsMocks.MockAnalytics) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name: "query failure",
			ctx:  asPrincipal(constant.RoleHotelAdmin, "hotel-1"),
			setupMock: func(repo *analyticsMocks.MockAnalytics) {
				repo.EXPECT().BookingStats(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.BookingStats{}, errors.New("boom"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := analyticsMocks.NewMockAnalytics(ctrl)
			redis := cacheMocks.NewMockRedisCache(ctrl)

			redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
			redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			tt.setupMock(repo)

			svc := service.New(repo, &config.Config{}, redis, mocks.NewOtel())

			res, err := svc.Summary(tt.ctx, tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}
