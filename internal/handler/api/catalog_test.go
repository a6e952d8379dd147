//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"bodyshop/internal/domain/money"
	"bodyshop/internal/domain/review"
	"bodyshop/internal/domain/service"
	"bodyshop/internal/domain/vehicle"
	"bodyshop/internal/handler/api"
	reqdto "bodyshop/internal/handler/dto/request"
	resdto "bodyshop/internal/handler/dto/response"
	"bodyshop/internal/pkg/pagination"
	"bodyshop/internal/pkg/ptr"
	commandsmock "bodyshop/internal/testutil/mock/commands"
	queriesmock "bodyshop/internal/testutil/mock/queries"
	th "bodyshop/internal/testutil/httptest"
	"bodyshop/internal/usecase/commands"
	"bodyshop/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestServiceHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockServiceCommands(ctrl)
	q := queriesmock.NewMockServiceQueries(ctrl)
	h := api.NewServiceHandler(cmds, q)

	router := newEngine()
	router.GET("/services", h.List)
	router.POST("/admin/services", fakeAuth, h.Create)
	router.PUT("/admin/services/:id", fakeAuth, h.Update)

	polish := &queries.ServiceView{ID: 3, Name: "Polish", DurationMinutes: 30, Price: money.FromCents(5000), IsActive: true}

	t.Run("list renders prices as strings", func(t *testing.T) {
		q.EXPECT().ListActive(gomock.Any()).Return([]*queries.ServiceView{polish}, nil)

		rec := perform(t, router, http.MethodGet, "/services", nil, nil)

		var body []resdto.ServiceResponse
		th.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "50.00", body[0].Price)
		assert.Equal(t, 30, body[0].DurationMinutes)
	})

	t.Run("create parses the price and returns the stored service", func(t *testing.T) {
		req := reqdto.CreateServiceRequest{Name: "Polish", DurationMinutes: 30, Price: "50.00"}
		cmds.EXPECT().Create(gomock.Any(), adminActor, commands.CreateServiceRequest{
			Name: "Polish", DurationMinutes: 30, Price: money.FromCents(5000),
		}).Return(int64(3), nil)
		q.EXPECT().GetByID(gomock.Any(), int64(3)).Return(polish, nil)

		rec := perform(t, router, http.MethodPost, "/admin/services", req, &adminActor)

		var body resdto.ServiceResponse
		th.AssertSuccessResponse(t, rec, http.StatusCreated, &body)
		assert.Equal(t, int64(3), body.ID)
		th.AssertHeaders(t, rec, map[string]string{"Location": "/api/services/3"})
	})

	t.Run("create rejects a malformed price before the usecase", func(t *testing.T) {
		req := reqdto.CreateServiceRequest{Name: "Polish", DurationMinutes: 30, Price: "fifty"}
		rec := perform(t, router, http.MethodPost, "/admin/services", req, &adminActor)
		th.AssertErrorResponse(t, rec, http.StatusBadRequest, "invalid money amount")
	})

	t.Run("create accepts a name at the column limit", func(t *testing.T) {
		name := strings.Repeat("a", service.MaxNameLength)
		req := reqdto.CreateServiceRequest{Name: name, DurationMinutes: 30, Price: "50.00"}
		cmds.EXPECT().Create(gomock.Any(), adminActor, commands.CreateServiceRequest{
			Name: name, DurationMinutes: 30, Price: money.FromCents(5000),
		}).Return(int64(3), nil)
		q.EXPECT().GetByID(gomock.Any(), int64(3)).Return(polish, nil)

		rec := perform(t, router, http.MethodPost, "/admin/services", req, &adminActor)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("create rejects a name past the column limit", func(t *testing.T) {
		req := reqdto.CreateServiceRequest{Name: strings.Repeat("a", service.MaxNameLength+1), DurationMinutes: 30, Price: "50.00"}
		rec := perform(t, router, http.MethodPost, "/admin/services", req, &adminActor)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create by staff is forbidden", func(t *testing.T) {
		req := reqdto.CreateServiceRequest{Name: "Polish", DurationMinutes: 30, Price: "50"}
		cmds.EXPECT().Create(gomock.Any(), staffActor, gomock.Any()).Return(int64(0), commands.ErrAdminOnly)
		rec := perform(t, router, http.MethodPost, "/admin/services", req, &staffActor)
		th.AssertErrorResponse(t, rec, http.StatusForbidden, "")
	})

	t.Run("update of a missing service is 404", func(t *testing.T) {
		req := reqdto.UpdateServiceRequest{Price: ptr.Ptr("60.00")}
		cmds.EXPECT().Update(gomock.Any(), adminActor, int64(99), gomock.Any()).Return(service.ErrServiceNotFound)
		rec := perform(t, router, http.MethodPut, "/admin/services/99", req, &adminActor)
		th.AssertErrorResponse(t, rec, http.StatusNotFound, "service not found")
	})
}

func TestVehicleHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockVehicleCommands(ctrl)
	q := queriesmock.NewMockVehicleQueries(ctrl)
	h := api.NewVehicleHandler(cmds, q)

	router := newEngine()
	router.GET("/vehicles", fakeAuth, h.List)
	router.POST("/vehicles", fakeAuth, h.Create)
	router.DELETE("/vehicles/:id", fakeAuth, h.Delete)

	t.Run("list returns only the caller's vehicles", func(t *testing.T) {
		q.EXPECT().ListMine(gomock.Any(), clientActor).Return([]*queries.VehicleView{
			{ID: 20, UserID: clientActor.ID, Make: "Toyota", Model: "Corolla"},
		}, nil)

		rec := perform(t, router, http.MethodGet, "/vehicles", nil, &clientActor)

		var body []resdto.VehicleResponse
		th.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "Corolla", body[0].Model)
	})

	t.Run("create returns the new id", func(t *testing.T) {
		req := reqdto.CreateVehicleRequest{Make: "Toyota", Model: "Corolla", Year: ptr.Ptr(2019)}
		cmds.EXPECT().Create(gomock.Any(), clientActor, req.ToAttributes()).Return(int64(21), nil)

		rec := perform(t, router, http.MethodPost, "/vehicles", req, &clientActor)

		var body resdto.CreatedResponse
		th.AssertSuccessResponse(t, rec, http.StatusCreated, &body)
		assert.Equal(t, int64(21), body.ID)
	})

	t.Run("create without a model is 400", func(t *testing.T) {
		rec := perform(t, router, http.MethodPost, "/vehicles", map[string]any{"make": "Toyota"}, &clientActor)
		th.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid request format")
	})

	t.Run("delete", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{name: "ok", err: nil, status: http.StatusNoContent},
			{name: "someone else's vehicle", err: vehicle.ErrVehicleNotOwned, status: http.StatusForbidden},
			{name: "still booked", err: vehicle.ErrVehicleHasBooking, status: http.StatusConflict},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				cmds.EXPECT().Delete(gomock.Any(), clientActor, int64(20)).Return(tc.err)
				rec := perform(t, router, http.MethodDelete, "/vehicles/20", nil, &clientActor)
				assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			})
		}
	})
}

func TestReviewHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockReviewCommands(ctrl)
	q := queriesmock.NewMockReviewQueries(ctrl)
	h := api.NewReviewHandler(cmds, q)

	router := newEngine()
	router.GET("/reviews", h.List)
	router.POST("/reviews", fakeAuth, h.Create)
	router.PUT("/admin/reviews/:id/approve", fakeAuth, h.Approve)
	router.DELETE("/reviews/:id", fakeAuth, h.Delete)

	t.Run("list is public and paginated", func(t *testing.T) {
		params := pagination.Params{Page: 1, Limit: 20}
		q.EXPECT().ListApproved(gomock.Any(), params).Return(
			pagination.NewPage([]*queries.ReviewView{{ID: 1, UserName: "Jane", Rating: 5, Comment: "Spotless"}}, params, 1), nil)

		rec := perform(t, router, http.MethodGet, "/reviews", nil, nil)

		var body pagination.Page[resdto.ReviewResponse]
		th.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		require.Len(t, body.Items, 1)
		assert.Equal(t, 5, body.Items[0].Rating)
	})

	t.Run("create", func(t *testing.T) {
		req := reqdto.CreateReviewRequest{BookingID: 5, Rating: 4, Comment: "Good"}
		cmds.EXPECT().Create(gomock.Any(), clientActor, req.ToCommand()).Return(int64(8), nil)

		rec := perform(t, router, http.MethodPost, "/reviews", req, &clientActor)

		var body resdto.CreatedResponse
		th.AssertSuccessResponse(t, rec, http.StatusCreated, &body)
		assert.Equal(t, int64(8), body.ID)
	})

	t.Run("create with rating out of range is 400", func(t *testing.T) {
		rec := perform(t, router, http.MethodPost, "/reviews", map[string]any{"booking_id": 5, "rating": 6}, &clientActor)
		th.AssertErrorResponse(t, rec, http.StatusBadRequest, "")
	})

	t.Run("second review for a booking is 409", func(t *testing.T) {
		cmds.EXPECT().Create(gomock.Any(), clientActor, gomock.Any()).Return(int64(0), review.ErrReviewAlreadyExists)
		rec := perform(t, router, http.MethodPost, "/reviews", reqdto.CreateReviewRequest{BookingID: 5, Rating: 4}, &clientActor)
		th.AssertErrorResponse(t, rec, http.StatusConflict, "already exists")
	})

	t.Run("approve", func(t *testing.T) {
		cmds.EXPECT().Approve(gomock.Any(), staffActor, int64(8)).Return(nil)
		rec := perform(t, router, http.MethodPut, "/admin/reviews/8/approve", nil, &staffActor)
		th.AssertSuccessResponse(t, rec, http.StatusOK, nil)
	})

	t.Run("delete by a stranger is 403", func(t *testing.T) {
		cmds.EXPECT().Delete(gomock.Any(), clientActor, int64(8)).Return(review.ErrDeleteNotAllowed)
		rec := perform(t, router, http.MethodDelete, "/reviews/8", nil, &clientActor)
		th.AssertErrorResponse(t, rec, http.StatusForbidden, "")
	})
}
