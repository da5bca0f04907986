package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "storagebooking/app/echoServer/controller/auth"
	"storagebooking/app/echoServer/controller/availability"
	"storagebooking/app/echoServer/controller/booking"
	"storagebooking/app/echoServer/controller/item"
	"storagebooking/app/echoServer/controller/payment"
	"storagebooking/model"
	utiljwt "storagebooking/util/jwt"
)

type C struct {
	Booking      *booking.Controller
	Item         *item.Controller
	Availability *availability.Controller
	Payment      *payment.Controller
	Auth         *authctrl.Controller
	JWTSecret    string
	Env          string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/payment/webhook", c.Payment.HandleWebhook)
	if c.Env == "dev" {
		pub.POST("/auth/dev-token", c.Auth.DevToken)
	}

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))
	// user_id / role extraction for downstream handlers
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := utiljwt.ParseAuth(ctx.Request().Header.Get(echo.HeaderAuthorization), c.JWTSecret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", int64(sub))
			if role, ok := claims["role"].(string); ok && role != "" {
				ctx.Set("role", model.Role(role))
			} else {
				ctx.Set("role", model.RoleUser)
			}
			return next(ctx)
		}
	})

	// Items
	auth.GET("/items", c.Item.List)
	auth.GET("/items/:id", c.Item.Get)
	auth.GET("/items/:id/availability", c.Availability.Get)
	// Admin endpoints
	auth.POST("/items", c.Item.Create)

	// Bookings
	auth.POST("/bookings", c.Booking.Create)
	auth.GET("/bookings", c.Booking.List)
	auth.GET("/bookings/my", c.Booking.MyBookings)
	auth.GET("/bookings/count", c.Booking.Count)
	auth.GET("/bookings/:id", c.Booking.Get)
	auth.PUT("/bookings/:id", c.Booking.Update)
	auth.DELETE("/bookings/:id", c.Booking.Delete)

	// Lifecycle transitions
	auth.POST("/bookings/:id/confirm", c.Booking.Confirm)
	auth.POST("/bookings/:id/reject", c.Booking.Reject)
	auth.POST("/bookings/:id/cancel", c.Booking.Cancel)
	auth.POST("/bookings/:id/return", c.Booking.Return)
	auth.POST("/bookings/:id/pickup", c.Booking.Pickup)

	// Payments
	auth.PUT("/bookings/:id/payment-status", c.Booking.UpdatePaymentStatus)
	auth.POST("/bookings/:id/invoice", c.Payment.IssueInvoice)
}
