package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	auditsink "visitgate/internal/adapter/audit"
	httpadp "visitgate/internal/adapter/http"
	"visitgate/internal/adapter/middleware"
	"visitgate/internal/adapter/repository/mysql"
	"visitgate/internal/config"
	"visitgate/internal/domain/audit"
	"visitgate/internal/infrastructure/cache"
	"visitgate/internal/infrastructure/db"
	apptuc "visitgate/internal/usecase/appointment"
	lookupuc "visitgate/internal/usecase/lookup"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	var sink audit.Sink
	if cfg.AMQPURI != "" {
		amqpSink, err := auditsink.NewAMQPSink(cfg.AMQPURI, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("amqp: %v", err)
		}
		defer amqpSink.Close()
		sink = amqpSink
	} else {
		sink = auditsink.NewLogSink()
	}

	repo := mysql.NewAppointmentRepository(gdb)
	appts := apptuc.NewUsecase(repo, mysql.NewGormUoW(gdb), sink)
	lookup := lookupuc.NewUsecase(repo, appts)

	h := httpadp.NewHandler()
	pub := httpadp.NewPublicHandler(appts, lookup)
	staff := httpadp.NewStaffHandler(appts)

	throttle, err := middleware.NewThrottle(cfg.ThrottlePerMinute, cfg.ThrottleBurst, cfg.ThrottleClients)
	if err != nil {
		log.Fatalf("throttle: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	// public surface: throttled, intake deduplicated via Idempotency-Key
	v1 := e.Group("/api/v1", throttle.Middleware())
	v1.POST("/appointments", pub.CreateAppointment,
		middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	v1.GET("/appointments/:code", pub.GetAppointment)
	v1.GET("/appointments/:code/pass", pub.GetPass)
	v1.POST("/appointments/:code/cancel", pub.CancelAppointment)

	// staff console: identity asserted upstream, carried in X-Staff-Id
	sg := e.Group("/api/v1/staff")
	sg.GET("/appointments", staff.List)
	sg.GET("/appointments/stats", staff.Stats)
	sg.GET("/appointments/:code", staff.Get)
	sg.POST("/appointments/:code/approve", staff.Approve)
	sg.POST("/appointments/:code/reject", staff.Reject)
	sg.POST("/appointments/:code/cancel", staff.Cancel)
	sg.POST("/appointments/:code/complete", staff.Complete)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
