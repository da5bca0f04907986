// Package main storage booking API.
//
// @title           Storage Booking API
// @version         1.0
// @description     storage rental booking service (items, availability, booking lifecycle).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storagebooking/app/echoServer"
	authctrl "storagebooking/app/echoServer/controller/auth"
	availabilityctrl "storagebooking/app/echoServer/controller/availability"
	bookingctrl "storagebooking/app/echoServer/controller/booking"
	itemctrl "storagebooking/app/echoServer/controller/item"
	paymentctrl "storagebooking/app/echoServer/controller/payment"
	"storagebooking/app/echoServer/validation"
	"storagebooking/config"
	"storagebooking/notify"
	bookingrepo "storagebooking/repository/booking"
	invoicerepo "storagebooking/repository/invoice"
	itemrepo "storagebooking/repository/item"
	userrepo "storagebooking/repository/user"
	availabilitysvc "storagebooking/service/availability"
	bookingsvc "storagebooking/service/booking"
	itemsvc "storagebooking/service/item"
	paymentsvc "storagebooking/service/payment"
	"storagebooking/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	// Redis (notification queue)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error("redis connect failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// repos
	br := bookingrepo.New(db.DB)
	ir := itemrepo.New(db.DB)
	ur := userrepo.New(db.DB)
	xr := invoicerepo.NewHTTP(cfg.InvoiceAPIKey, cfg.InvoiceBaseURL, cfg.InvoiceCallbackToken)

	// notifications: publish on transitions, deliver in the background
	pub := notify.NewRedisPublisher(rdb)
	worker := notify.NewWorker(rdb, &notify.LogSender{Log: log}, log)
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go func() {
		if err := worker.Run(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error("notification worker stopped", "err", err)
		}
	}()

	// services
	bs := bookingsvc.New(db, br, ir, ur, pub, log)
	is := itemsvc.New(ir)
	as := availabilitysvc.New(ir, br)
	ps := paymentsvc.New(xr, br, log)

	// controllers
	v := validation.NewValidate()
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	itemC := &itemctrl.Controller{Svc: is, V: v, Log: log}
	availabilityC := &availabilityctrl.Controller{Svc: as, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}
	authC := &authctrl.Controller{JWTSecret: cfg.JWTSecret, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Booking:      bookingC,
		Item:         itemC,
		Availability: availabilityC,
		Payment:      paymentC,
		Auth:         authC,

		JWTSecret: cfg.JWTSecret,
		Env:       cfg.Env,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port)
	e.Logger.Fatal(e.Start(":" + port))
}
