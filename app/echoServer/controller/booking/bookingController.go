package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"storagebooking/app/echoServer/jwtx"
	"storagebooking/model"
	bs "storagebooking/service/booking"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func httpStatus(code bs.ErrCode) int {
	switch code {
	case bs.ErrBookingNotFound, bs.ErrItemNotFound:
		return http.StatusNotFound
	case bs.ErrForbidden:
		return http.StatusForbidden
	case bs.ErrNoItems, bs.ErrInvalidDates, bs.ErrInvalidQuantity, bs.ErrInvalidPaymentStatus:
		return http.StatusBadRequest
	case bs.ErrNoVirtualStock, bs.ErrNoPhysicalStock,
		bs.ErrAlreadyConfirmed, bs.ErrAlreadyRejected, bs.ErrAlreadyCancelled,
		bs.ErrAlreadyDeleted, bs.ErrAlreadyReturned, bs.ErrAlreadyPickedUp,
		bs.ErrNotConfirmed, bs.ErrInvalidTransition:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	code := bs.Code(err)
	status := httpStatus(code)
	if status == http.StatusInternalServerError {
		h.Log.Error(op, "err", err)
		return c.JSON(status, echo.Map{"message": "internal error"})
	}
	return c.JSON(status, echo.Map{"message": err.Error(), "code": string(code)})
}

func bookingID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// POST /v1/bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	items, err := toItemRequests(req.Items)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	actor := jwtx.ActorFromContext(c)

	out, err := h.Svc.Create(c.Request().Context(), actor.ID, items)
	if err != nil {
		return h.fail(c, "booking create", err)
	}
	return c.JSON(http.StatusCreated, out)
}

// PUT /v1/bookings/:id
func (h *Controller) Update(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	items, err := toItemRequests(req.Items)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	out, err := h.Svc.Update(c.Request().Context(), id, jwtx.ActorFromContext(c), items)
	if err != nil {
		return h.fail(c, "booking update", err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/bookings/:id/confirm
func (h *Controller) Confirm(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.Confirm(c.Request().Context(), id, jwtx.ActorFromContext(c))
	if err != nil {
		return h.fail(c, "booking confirm", err)
	}
	return c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/reject
func (h *Controller) Reject(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.Reject(c.Request().Context(), id, jwtx.ActorFromContext(c))
	if err != nil {
		return h.fail(c, "booking reject", err)
	}
	return c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.Cancel(c.Request().Context(), id, jwtx.ActorFromContext(c))
	if err != nil {
		return h.fail(c, "booking cancel", err)
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /v1/bookings/:id  (admin, soft delete)
func (h *Controller) Delete(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.Delete(c.Request().Context(), id, jwtx.ActorFromContext(c))
	if err != nil {
		return h.fail(c, "booking delete", err)
	}
	return c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.ReturnItems(c.Request().Context(), id, jwtx.ActorFromContext(c))
	if err != nil {
		return h.fail(c, "booking return", err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/bookings/:id/pickup
func (h *Controller) Pickup(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.ConfirmPickup(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "booking pickup", err)
	}
	return c.JSON(http.StatusOK, out)
}

// PUT /v1/bookings/:id/payment-status  (admin)
func (h *Controller) UpdatePaymentStatus(c echo.Context) error {
	if !jwtx.ActorFromContext(c).Elevated() {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdatePaymentStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	var ps *model.PaymentStatus
	if req.PaymentStatus != nil {
		v := model.PaymentStatus(*req.PaymentStatus)
		ps = &v
	}
	b, err := h.Svc.UpdatePaymentStatus(c.Request().Context(), id, ps)
	if err != nil {
		return h.fail(c, "payment status update", err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /v1/bookings  (admin)
func (h *Controller) List(c echo.Context) error {
	if !jwtx.ActorFromContext(c).Elevated() {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	page, size := pageParams(c)
	orderBy := c.QueryParam("order_by")

	var (
		out *bs.Page
		err error
	)
	if orderBy != "" {
		out, err = h.Svc.GetOrderedBookings(c.Request().Context(), orderBy, c.QueryParam("dir") == "asc", page, size)
	} else {
		out, err = h.Svc.GetAllBookings(c.Request().Context(), page, size)
	}
	if err != nil {
		return h.fail(c, "booking list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/bookings/my
func (h *Controller) MyBookings(c echo.Context) error {
	page, size := pageParams(c)
	actor := jwtx.ActorFromContext(c)
	out, err := h.Svc.GetUserBookings(c.Request().Context(), actor.ID, page, size)
	if err != nil {
		return h.fail(c, "user bookings", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/bookings/count  (admin)
func (h *Controller) Count(c echo.Context) error {
	if !jwtx.ActorFromContext(c).Elevated() {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	n, err := h.Svc.GetBookingsCount(c.Request().Context())
	if err != nil {
		return h.fail(c, "booking count", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// GET /v1/bookings/:id
func (h *Controller) Get(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.GetBookingByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "booking get", err)
	}
	// owners see their own bookings, admins see everything
	actor := jwtx.ActorFromContext(c)
	if out.Booking.UserID != actor.ID && !actor.Elevated() {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	return c.JSON(http.StatusOK, out)
}

func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	return page, size
}
