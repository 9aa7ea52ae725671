package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	"hotelops/infras/otel/mocks"
	s3Mocks "hotelops/infras/s3/mocks"
	roomMocks "hotelops/internal/domains/room/mocks"
	"hotelops/internal/domains/room/model"
	"hotelops/internal/domains/room/model/dto"
	"hotelops/internal/domains/room/service"
	"hotelops/permissions"
	"hotelops/shared/cache"
	cacheMocks "hotelops/shared/cache/mocks"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
)

type fixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, &config.Config{}, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func asPrincipal(role, hotelID string) context.Context {
	return permissions.WithPrincipal(context.Background(), permissions.Principal{
		UserID:       "caller",
		Role:         role,
		HotelID:      hotelID,
		Capabilities: permissions.Resolve(role, &permissions.StaffFlags{CanManageRooms: true}),
	})
}

func hotelRoom(hotelID string) model.Room {
	return model.Room{
		ID:          "room-1",
		HotelID:     hotelID,
		Name:        "Ocean View",
		Type:        model.TypeDeluxe,
		BasePrice:   120,
		Capacity:    2,
		MaxCapacity: 3,
		RoomNumber:  "101",
		Status:      model.StatusAvailable,
		Photos:      pq.StringArray{"https://cdn.example/rooms/room-1/a.png"},
	}
}

func createRequest() dto.CreateRoomRequest {
	return dto.CreateRoomRequest{
		Name:        "Ocean View",
		Type:        model.TypeDeluxe,
		BasePrice:   120,
		Capacity:    2,
		MaxCapacity: 3,
		RoomNumber:  "101",
	}
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		hotelID   string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "staff creates in own hotel with defaults",
			ctx:  asPrincipal(constant.RoleStaff, "hotel-1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, "hotel-1", room.HotelID)
						assert.Equal(t, model.StatusAvailable, room.Status)
						assert.NotNil(t, room.Photos)
						assert.Equal(t, "caller", room.CreatedBy)

						return nil
					})
			},
		},
		{
			name:      "staff cannot target another hotel",
			ctx:       asPrincipal(constant.RoleStaff, "hotel-1"),
			hotelID:   "hotel-2",
			setupMock: func(fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "super admin must name a hotel",
			ctx:       asPrincipal(constant.RoleSuperAdmin, ""),
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unassigned profile",
			ctx:       asPrincipal(constant.RoleHotelAdmin, ""),
			setupMock: func(fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:    "duplicate room number",
			ctx:     asPrincipal(constant.RoleSuperAdmin, ""),
			hotelID: "hotel-1",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			req := createRequest()
			req.HotelID = tt.hotelID

			res, err := f.svc.Create(tt.ctx, req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, []string{}, res.Photos)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "rooms.hotel_id")
			assert.Equal(t, "hotel-1", args[model.FieldHotelID])
			assert.Equal(t, model.StatusCleaning, args[model.FieldStatus])

			return 1, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Room, error) {
			assert.Equal(t, model.FieldRoomNumber, params.SortBy)

			return []model.Room{hotelRoom("hotel-1")}, nil
		})

	res, err := f.svc.GetAll(asPrincipal(constant.RoleStaff, "hotel-1"),
		gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, dto.RoomFilter{Status: model.StatusCleaning})
	require.NoError(t, err)
	assert.Len(t, res.Rooms, 1)
	assert.Equal(t, 1, res.TotalData)
}

func TestRoomService_Get(t *testing.T) {
	t.Run("same hotel", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)

		res, err := f.svc.Get(asPrincipal(constant.RoleStaff, "hotel-1"), "room-1")
		require.NoError(t, err)
		assert.Equal(t, "101", res.RoomNumber)
	})

	t.Run("other hotel", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-2"), nil)

		_, err := f.svc.Get(asPrincipal(constant.RoleStaff, "hotel-1"), "room-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(asPrincipal(constant.RoleSuperAdmin, ""), "room-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	one := 1
	five := 5
	name := "Garden View"

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "renames room",
			req:  dto.UpdateRoomRequest{Name: &name},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &name, fields[model.FieldName])

						return nil
					})
			},
		},
		{
			name:      "empty request",
			req:       dto.UpdateRoomRequest{},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "capacity above max capacity",
			req:  dto.UpdateRoomRequest{Capacity: &five},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "max capacity lowered below capacity",
			req:  dto.UpdateRoomRequest{MaxCapacity: &one},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "database failure",
			req:  dto.UpdateRoomRequest{Name: &name},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(asPrincipal(constant.RoleHotelAdmin, "hotel-1"), tt.req, "room-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestRoomService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusMaintenance, fields[model.FieldStatus])
			assert.Len(t, fields, 3)

			return nil
		})

	err := f.svc.UpdateStatus(asPrincipal(constant.RoleStaff, "hotel-1"),
		dto.UpdateRoomStatusRequest{Status: model.StatusMaintenance}, "room-1")
	require.NoError(t, err)
}

type nopFile struct {
	*strings.Reader
}

func (nopFile) Close() error {
	return nil
}

func TestRoomService_UploadPhoto(t *testing.T) {
	header := &multipart.FileHeader{Filename: "Front.PNG", Size: 10}
	file := nopFile{strings.NewReader("png")}

	t.Run("stores under room directory", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), "rooms/room-1", gomock.Any(), header, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
				assert.True(t, strings.HasSuffix(fileName, ".png"))

				return "https://cdn.example/rooms/room-1/" + fileName, nil
			})
		f.repo.EXPECT().AppendPhoto(gomock.Any(), "room-1", gomock.Any(), "caller").Return(nil)

		url, err := f.svc.UploadPhoto(asPrincipal(constant.RoleStaff, "hotel-1"),
			dto.UploadPhotoRequest{Photo: header, PhotoFile: file}, "room-1")
		require.NoError(t, err)
		assert.Contains(t, url, "rooms/room-1/")
	})

	t.Run("removes object when saving fails", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example/rooms/room-1/x.png", nil)
		f.repo.EXPECT().AppendPhoto(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))
		f.s3.EXPECT().DeleteFile(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, key string) error {
				assert.True(t, strings.HasPrefix(key, "rooms/room-1/"))

				return nil
			})

		_, err := f.svc.UploadPhoto(asPrincipal(constant.RoleStaff, "hotel-1"),
			dto.UploadPhotoRequest{Photo: header, PhotoFile: file}, "room-1")
		require.Error(t, err)
	})
}

func TestRoomService_RemovePhoto(t *testing.T) {
	url := "https://cdn.example/rooms/room-1/a.png"

	t.Run("deletes object", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)
		f.repo.EXPECT().RemovePhoto(gomock.Any(), "room-1", url, "caller").Return(true, nil)
		f.s3.EXPECT().GetObjectKeyFromURL(url).Return("rooms/room-1/a.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "rooms/room-1/a.png").Return(nil)

		err := f.svc.RemovePhoto(asPrincipal(constant.RoleStaff, "hotel-1"), dto.RemovePhotoRequest{URL: url}, "room-1")
		require.NoError(t, err)
	})

	t.Run("unknown photo", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)
		f.repo.EXPECT().RemovePhoto(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.RemovePhoto(asPrincipal(constant.RoleStaff, "hotel-1"), dto.RemovePhotoRequest{URL: url}, "room-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("room with bookings", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-1"), nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeFkViolation, Message: "room has bookings"})

		err := f.svc.Delete(asPrincipal(constant.RoleHotelAdmin, "hotel-1"), "room-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("other hotel", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelRoom("hotel-2"), nil)

		err := f.svc.Delete(asPrincipal(constant.RoleHotelAdmin, "hotel-1"), "room-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}
