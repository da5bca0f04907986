package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"storagebooking/model"
	utiljwt "storagebooking/util/jwt"
)

type Controller struct {
	JWTSecret string
	V         *validator.Validate
	Log       *slog.Logger
}

type devTokenReq struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Role   string `json:"role"`
}

// POST /v1/auth/dev-token
// Mints a signed token for local testing. The route is only registered in
// dev environments; account registration and login live elsewhere.
func (ct *Controller) DevToken(c echo.Context) error {
	var req devTokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	role := req.Role
	if role == "" {
		role = string(model.RoleUser)
	}

	token, err := utiljwt.Issue(ct.JWTSecret, req.UserID, role, 24)
	if err != nil {
		ct.Log.Error("dev token issue failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
