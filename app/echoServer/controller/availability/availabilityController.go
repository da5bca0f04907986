package availability

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	avsvc "storagebooking/service/availability"
)

type Controller struct {
	Svc avsvc.Service
	Log *slog.Logger
}

const dateLayout = "2006-01-02"

// GET /v1/items/:id/availability?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	start, err := time.ParseInLocation(dateLayout, c.QueryParam("start"), time.Local)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad start date"})
	}
	end, err := time.ParseInLocation(dateLayout, c.QueryParam("end"), time.Local)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad end date"})
	}

	res, err := h.Svc.AvailableQuantity(c.Request().Context(), id, start, end)
	if err != nil {
		switch avsvc.Code(err) {
		case avsvc.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
		case avsvc.ErrBadRange:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "end date before start date"})
		default:
			h.Log.Error("availability", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, res)
}
