package payment

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"storagebooking/app/echoServer/jwtx"
	paymentsvc "storagebooking/service/payment"
)

type Controller struct {
	Svc paymentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type issueInvoiceReq struct {
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	PayerEmail string  `json:"payer_email" validate:"required,email"`
}

// POST /v1/bookings/:id/invoice  (admin)
func (h *Controller) IssueInvoice(c echo.Context) error {
	if !jwtx.ActorFromContext(c).Elevated() {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req issueInvoiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	out, err := h.Svc.IssueInvoice(c.Request().Context(), id, req.Amount, req.PayerEmail)
	if err != nil {
		if paymentsvc.Code(err) == paymentsvc.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		}
		h.Log.Error("issue invoice", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /v1/payment/webhook  (public, provider callback)
func (h *Controller) HandleWebhook(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "cannot read body"})
	}
	sig := c.Request().Header.Get("X-Callback-Token")

	if err := h.Svc.HandleWebhook(c.Request().Context(), sig, raw); err != nil {
		switch paymentsvc.Code(err) {
		case paymentsvc.ErrBadSignature:
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "bad signature"})
		case paymentsvc.ErrBadPayload:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad payload"})
		case paymentsvc.ErrUnknownInvoice:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "unknown invoice"})
		default:
			h.Log.Error("payment webhook", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
}
