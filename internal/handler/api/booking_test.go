//go:build unit

package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/money"
	"bodyshop/internal/domain/service"
	"bodyshop/internal/domain/user"
	"bodyshop/internal/domain/vehicle"
	"bodyshop/internal/handler/api"
	reqdto "bodyshop/internal/handler/dto/request"
	resdto "bodyshop/internal/handler/dto/response"
	"bodyshop/internal/pkg/config"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/pagination"
	"bodyshop/internal/pkg/ptr"
	commandsmock "bodyshop/internal/testutil/mock/commands"
	queriesmock "bodyshop/internal/testutil/mock/queries"
	th "bodyshop/internal/testutil/httptest"
	"bodyshop/internal/usecase/commands"
	"bodyshop/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	s.router = newEngine()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/bookings/available-slots/:date", s.handler.AvailableSlots)
	s.router.POST("/bookings", fakeAuth, s.handler.Create)
	s.router.GET("/bookings", fakeAuth, s.handler.ListMine)
	s.router.GET("/bookings/:id", fakeAuth, s.handler.Get)
	s.router.PUT("/bookings/:id/cancel", fakeAuth, s.handler.Cancel)
	s.router.PUT("/bookings/:id/status", fakeAuth, s.handler.UpdateStatus)
	s.router.PUT("/bookings/:id/services", fakeAuth, s.handler.UpdateServices)
	s.router.GET("/admin/bookings", fakeAuth, s.handler.ListAll)
	s.router.GET("/admin/bookings/export", fakeAuth, s.handler.Export)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) request(method, path string, body any, actor *user.Actor) *httptest.ResponseRecorder {
	return perform(s.T(), s.router, method, path, body, actor)
}

// ================================================================================
// AvailableSlots
// ================================================================================

func (s *BookingHandlerTestSuite) TestAvailableSlots() {
	s.Run("success: lists free start times", func() {
		s.mockQueries.EXPECT().AvailableSlots(gomock.Any(), "2024-05-10", (*int)(nil)).
			Return(&queries.AvailableSlotsView{Date: "2024-05-10", Slots: []string{"09:00", "11:00"}}, nil)

		rec := s.request(http.MethodGet, "/bookings/available-slots/2024-05-10", nil, nil)

		var body resdto.AvailableSlotsResponse
		th.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2024-05-10", body.Date)
		s.Equal([]string{"09:00", "11:00"}, body.AvailableSlots)
	})

	s.Run("success: duration is passed through", func() {
		s.mockQueries.EXPECT().AvailableSlots(gomock.Any(), "2024-05-10", gomock.Eq(ptr.Ptr(120))).
			Return(&queries.AvailableSlotsView{Date: "2024-05-10", Slots: []string{}}, nil)

		rec := s.request(http.MethodGet, "/bookings/available-slots/2024-05-10?duration=120", nil, nil)

		var body resdto.AvailableSlotsResponse
		th.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.AvailableSlots)
	})

	s.Run("error: 400 on a non-numeric duration", func() {
		rec := s.request(http.MethodGet, "/bookings/available-slots/2024-05-10?duration=long", nil, nil)
		th.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "duration")
	})

	s.Run("error: 400 on an impossible date without reading bookings", func() {
		store := queriesmock.NewMockBookingReadStore(s.mockCtrl)
		q, err := queries.NewBookingQueries(store, config.BookingConfig{SlotMode: "point", DefaultDurationMin: 60})
		s.Require().NoError(err)

		router := newEngine()
		router.GET("/bookings/available-slots/:date", api.NewBookingHandler(s.mockCommands, q).AvailableSlots)

		rec := th.PerformRequest(s.T(), router, http.MethodGet, "/bookings/available-slots/2024-13-01", nil, "")
		th.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// Create
// ================================================================================

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	reqBody := reqdto.CreateBookingRequest{
		VehicleID:     20,
		ServiceIDs:    []int64{1, 2},
		ScheduledDate: "2024-05-10",
		ScheduledTime: "09:00",
	}
	result := &commands.CreateBookingResult{BookingID: 501, EndTime: "10:15", TotalPrice: money.FromCents(17550)}

	s.Run("success: 201 with message and booking id", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), clientActor, reqBody.ToCommand()).Return(result, nil)

		rec := s.request(http.MethodPost, url, reqBody, &clientActor)

		var body resdto.CreateBookingResponse
		th.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(int64(501), body.BookingID)
		s.Equal("Booking created successfully", body.Message)
		s.Equal("10:15", body.EndTime)
		s.Equal("175.50", body.TotalPrice)
		th.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/501"})
	})

	missing := []testCaseBooking{
		{name: "missing vehicle_id", mutate: th.Field("vehicle_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing scheduled_date", mutate: th.Field("scheduled_date", nil), expectCode: http.StatusBadRequest},
		{name: "missing scheduled_time", mutate: th.Field("scheduled_time", nil), expectCode: http.StatusBadRequest},
		{name: "non-positive service id", mutate: th.Field("service_ids", []int64{0}), expectCode: http.StatusBadRequest},
		{name: "vehicle id as string", mutate: th.Field("vehicle_id", "20"), expectCode: http.StatusBadRequest},
	}
	for _, tc := range missing {
		s.Run("error: "+tc.name, func() {
			rec := s.request(http.MethodPost, url, th.DtoMap(s.T(), reqBody, tc.mutate), &clientActor)
			th.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}

	s.Run("error: 401 without a token", func() {
		rec := s.request(http.MethodPost, url, reqBody, nil)
		th.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: maps usecase errors to statuses", func() {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{name: "no services", err: booking.ErrNoServices, status: http.StatusBadRequest},
			{name: "malformed date", err: errs.Wrapf(booking.ErrInvalidDate, "%q", "2024-13-01"), status: http.StatusBadRequest},
			{name: "vehicle not owned", err: vehicle.ErrVehicleNotOwned, status: http.StatusForbidden},
			{name: "unknown service", err: errs.Wrapf(service.ErrServiceNotFound, "service %d", 7), status: http.StatusNotFound},
			{name: "slot taken", err: booking.ErrSlotUnavailable, status: http.StatusConflict},
			{name: "database down", err: errs.New("connection refused"), status: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := s.request(http.MethodPost, url, reqBody, &clientActor)
				th.AssertErrorResponse(s.T(), rec, tc.status, "")
			})
		}
	})

	s.Run("success: Idempotency-Key is passed through and replays are flagged", func() {
		key := "4f9c2d1e-8a7b-4c3d-9e2f-1a2b3c4d5e6f"
		want := reqBody.ToCommand()
		want.IdempotencyKey = &key
		replayed := *result
		replayed.Replayed = true
		s.mockCommands.EXPECT().Create(gomock.Any(), clientActor, want).Return(&replayed, nil)

		rec := perform(s.T(), withHeader(s.router, "Idempotency-Key", key), http.MethodPost, url, reqBody, &clientActor)

		var body resdto.CreateBookingResponse
		th.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(int64(501), body.BookingID)
		th.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("error: malformed Idempotency-Key is rejected before the usecase", func() {
		rec := perform(s.T(), withHeader(s.router, "Idempotency-Key", "retry-1"), http.MethodPost, url, reqBody, &clientActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key must be a UUID")
	})

	s.Run("error: reused key maps to 409", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, commands.ErrIdempotencyKeyReused)
		rec := perform(s.T(), withHeader(s.router, "Idempotency-Key", "4f9c2d1e-8a7b-4c3d-9e2f-1a2b3c4d5e6f"), http.MethodPost, url, reqBody, &clientActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusConflict, "idempotency key")
	})

	s.Run("error: 404 names the missing service", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrapf(service.ErrServiceNotFound, "service %d", 7))
		rec := s.request(http.MethodPost, url, reqBody, &clientActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "service 7")
	})
}

// ================================================================================
// Read endpoints
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("success: booking with line items", func() {
		view := &queries.BookingView{
			ID: 5, UserID: 10, Date: "2024-05-10", StartTime: "09:00", EndTime: "10:15",
			Status: "pending", TotalPrice: money.FromCents(17550),
			Services: []queries.BookingServiceView{
				{ServiceID: 1, ServiceName: "Polish", DurationMinutes: 30, Quantity: 1, Price: money.FromCents(5000)},
			},
		}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), clientActor, int64(5)).Return(view, nil)

		rec := s.request(http.MethodGet, "/bookings/5", nil, &clientActor)

		var body resdto.BookingResponse
		th.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("175.50", body.TotalPrice)
		s.Require().Len(body.Services, 1)
		s.Equal("50.00", body.Services[0].Price)
	})

	s.Run("error: 400 on a non-numeric id", func() {
		rec := s.request(http.MethodGet, "/bookings/abc", nil, &clientActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 when hidden or missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), int64(6)).Return(nil, booking.ErrBookingNotFound)
		rec := s.request(http.MethodGet, "/bookings/6", nil, &clientActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestListMine() {
	s.mockQueries.EXPECT().ListMine(gomock.Any(), clientActor, pagination.Params{Page: 2, Limit: 5}).
		Return(pagination.NewPage([]*queries.BookingListItem{{ID: 9, TotalPrice: money.FromCents(1000)}}, pagination.Params{Page: 2, Limit: 5}, 6), nil)

	rec := s.request(http.MethodGet, "/bookings?page=2&limit=5", nil, &clientActor)

	var body pagination.Page[resdto.BookingListResponse]
	th.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(6, body.Total)
	s.Require().Len(body.Items, 1)
	s.Equal("10.00", body.Items[0].TotalPrice)
}

// ================================================================================
// Status changes
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	s.Run("error: 403 when a client cancels a confirmed booking", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), clientActor, int64(5)).Return(booking.ErrCancelNotAllowed)
		rec := s.request(http.MethodPut, "/bookings/5/cancel", nil, &clientActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("success: staff cancels", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), staffActor, int64(5)).Return(nil)
		rec := s.request(http.MethodPut, "/bookings/5/cancel", nil, &staffActor)

		var body resdto.MessageResponse
		th.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Booking cancelled successfully", body.Message)
	})
}

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	s.Run("success", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), staffActor, int64(5), "confirmed").Return(nil)
		rec := s.request(http.MethodPut, "/bookings/5/status", reqdto.UpdateStatusRequest{Status: "confirmed"}, &staffActor)
		th.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on a status outside the enum", func() {
		rec := s.request(http.MethodPut, "/bookings/5/status", map[string]any{"status": "done"}, &staffActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on an illegal transition", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), staffActor, int64(5), "completed").Return(booking.ErrInvalidTransition)
		rec := s.request(http.MethodPut, "/bookings/5/status", reqdto.UpdateStatusRequest{Status: "completed"}, &staffActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "status transition not allowed")
	})
}

func (s *BookingHandlerTestSuite) TestUpdateServices() {
	s.Run("success: returns the recomputed booking", func() {
		s.mockCommands.EXPECT().UpdateServices(gomock.Any(), clientActor, int64(5), []int64{3}).Return(nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), clientActor, int64(5)).
			Return(&queries.BookingView{ID: 5, EndTime: "10:00", TotalPrice: money.FromCents(3000)}, nil)

		rec := s.request(http.MethodPut, "/bookings/5/services", reqdto.UpdateServicesRequest{ServiceIDs: []int64{3}}, &clientActor)

		var body resdto.BookingResponse
		th.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("10:00", body.EndTime)
		s.Equal("30.00", body.TotalPrice)
	})

	s.Run("error: 400 on an empty list", func() {
		rec := s.request(http.MethodPut, "/bookings/5/services", map[string]any{"service_ids": []int64{}}, &clientActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 403 once the booking is confirmed", func() {
		s.mockCommands.EXPECT().UpdateServices(gomock.Any(), clientActor, int64(5), []int64{3}).Return(booking.ErrServicesLocked)
		rec := s.request(http.MethodPut, "/bookings/5/services", reqdto.UpdateServicesRequest{ServiceIDs: []int64{3}}, &clientActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// Admin
// ================================================================================

func (s *BookingHandlerTestSuite) TestListAll() {
	s.Run("success: filters are parsed", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any(), staffActor, gomock.Any(), pagination.Params{Page: 1, Limit: 20}).
			DoAndReturn(func(_ any, _ user.Actor, f queries.BookingFilter, p pagination.Params) (pagination.Page[*queries.BookingListItem], error) {
				s.Require().NotNil(f.Status)
				s.Equal("confirmed", *f.Status)
				s.Require().NotNil(f.DateFrom)
				s.Equal("2024-05-01", booking.FormatDate(*f.DateFrom))
				s.Nil(f.DateTo)
				return pagination.NewPage[*queries.BookingListItem](nil, p, 0), nil
			})

		rec := s.request(http.MethodGet, "/admin/bookings?status=confirmed&date_from=2024-05-01", nil, &staffActor)

		var body pagination.Page[resdto.BookingListResponse]
		th.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
	})

	s.Run("error: 400 on a malformed date filter", func() {
		rec := s.request(http.MethodGet, "/admin/bookings?date_to=2024-02-30", nil, &staffActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on an unknown status filter", func() {
		rec := s.request(http.MethodGet, "/admin/bookings?status=lost", nil, &staffActor)
		th.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestExport() {
	s.mockQueries.EXPECT().ExportXLSX(gomock.Any(), adminActor, queries.BookingFilter{}).Return([]byte("xlsx-bytes"), nil)

	rec := s.request(http.MethodGet, "/admin/bookings/export", nil, &adminActor)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	s.Contains(rec.Header().Get("Content-Disposition"), "bookings.xlsx")
	s.Equal("xlsx-bytes", rec.Body.String())
}
