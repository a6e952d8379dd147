package api

import (
	"fmt"
	"net/http"
	"strconv"

	reqdto "bodyshop/internal/handler/dto/request"
	resdto "bodyshop/internal/handler/dto/response"
	"bodyshop/internal/handler/httperr"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/pagination"
	"bodyshop/internal/pkg/ptr"
	"bodyshop/internal/usecase/commands"
	"bodyshop/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
)

var (
	errInvalidDuration       = errs.Mark(errs.New("duration must be a positive number of minutes"), errs.ErrValidation)
	errInvalidIdempotencyKey = errs.Mark(errs.New("Idempotency-Key must be a UUID"), errs.ErrValidation)
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Available slots
// @Description Start times still free on a date. The optional duration only matters in overlap mode.
// @Tags bookings
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param duration query int false "Requested duration in minutes"
// @Success 200 {object} resdto.AvailableSlotsResponse
// @Failure 400 {object} httperr.Response
// @Router /api/bookings/available-slots/{date} [get]
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	var duration *int
	if raw := c.Query("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			httperr.Respond(c, errs.Wrapf(errInvalidDuration, "%q", raw))
			return
		}
		duration = &d
	}

	view, err := h.q.AvailableSlots(c.Request.Context(), c.Param("date"), duration)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailableSlots(view))
}

// @Summary Create booking
// @Description Book one or more services for an owned vehicle
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "UUID; retries with the same key return the first booking"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	cmd := req.ToCommand()
	if raw := c.GetHeader(idempotencyKeyHeader); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			httperr.Respond(c, errInvalidIdempotencyKey)
			return
		}
		cmd.IdempotencyKey = ptr.Ptr(key.String())
	}

	result, err := h.cmds.Create(c.Request.Context(), actor, cmd)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if result.Replayed {
		c.Header(replayedHeader, "true")
	}
	c.Header("Location", fmt.Sprintf("/api/bookings/%d", result.BookingID))
	c.JSON(http.StatusCreated, resdto.CreateBookingResponse{
		Message:    "Booking created successfully",
		BookingID:  result.BookingID,
		EndTime:    result.EndTime,
		TotalPrice: result.TotalPrice.String(),
	})
}

// @Summary My bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} pagination.Page[resdto.BookingListResponse]
// @Router /api/bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	page, err := h.q.ListMine(c.Request.Context(), actor, pagination.FromQuery(c.Query("page"), c.Query("limit")))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	res, err := resdto.FromBookingPage(page)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get booking
// @Description Booking detail with line items. Visible to the owner and staff.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Cancel booking
// @Description Clients may cancel their own pending bookings; staff may cancel any open booking.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [put]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.cmds.Cancel(c.Request.Context(), actor, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Booking cancelled successfully"})
}

// @Summary Change booking status
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.cmds.UpdateStatus(c.Request.Context(), actor, id, req.Status); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Booking status updated successfully"})
}

// @Summary Replace booking services
// @Description Recomputes end time and total from the current service catalog.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param request body reqdto.UpdateServicesRequest true "Service ids"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/services [put]
func (h *BookingHandler) UpdateServices(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.cmds.UpdateServices(c.Request.Context(), actor, id, req.ServiceIDs); err != nil {
		httperr.Respond(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary All bookings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param date_from query string false "From date (YYYY-MM-DD)"
// @Param date_to query string false "To date (YYYY-MM-DD)"
// @Param user_id query int false "Client filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Page[resdto.BookingListResponse]
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/bookings [get]
func (h *BookingHandler) ListAll(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	filter, query, ok := bindFilter(c)
	if !ok {
		return
	}

	page, err := h.q.ListAll(c.Request.Context(), actor, filter, pagination.FromQuery(query.Page, query.Limit))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	res, err := resdto.FromBookingPage(page)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Export bookings
// @Description Spreadsheet of every booking matching the filters
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param date_from query string false "From date (YYYY-MM-DD)"
// @Param date_to query string false "To date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/bookings/export [get]
func (h *BookingHandler) Export(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	filter, _, ok := bindFilter(c)
	if !ok {
		return
	}

	data, err := h.q.ExportXLSX(c.Request.Context(), actor, filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func bindFilter(c *gin.Context) (queries.BookingFilter, reqdto.BookingFilterQuery, bool) {
	var query reqdto.BookingFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return queries.BookingFilter{}, query, false
	}
	filter, err := query.ToFilter()
	if err != nil {
		httperr.Respond(c, err)
		return queries.BookingFilter{}, query, false
	}
	return filter, query, true
}
