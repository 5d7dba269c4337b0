package main

import (
	"calpal/cmd/internal/config"
	"calpal/cmd/internal/domain/sqlite"
	"calpal/cmd/internal/domain/sqlite/repository"
	"calpal/cmd/internal/notify"
	"calpal/cmd/internal/routes"
	"calpal/cmd/internal/service"
	"calpal/cmd/internal/utils"
	"calpal/cmd/internal/utils/validators"
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/robfig/cron/v3"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	confPath := flag.String("config", "./config.yaml", "Path to config file")
	flag.Parse()

	conf, err := config.Load(*confPath)
	if err != nil {
		log.Fatal("failed to load config", err)
	}

	secret := os.Getenv("CALPAL_JWT_SECRET")
	if secret == "" {
		log.Fatal("CALPAL_JWT_SECRET is not set")
	}
	tokens := utils.NewTokens([]byte(secret), time.Duration(conf.TokenTTLHours)*time.Hour)

	// Init SQLite
	db, err := sqlite.Init(conf.DatabasePath)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	eventRepo := repository.NewEventRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	// Notification sink: webpush when VAPID keys are configured, otherwise
	// the log sink.
	var sink notify.Sink = notify.LogSink{}
	vapidPublic := os.Getenv("CALPAL_VAPID_PUBLIC_KEY")
	vapidPrivate := os.Getenv("CALPAL_VAPID_PRIVATE_KEY")
	if vapidPublic != "" && vapidPrivate != "" {
		sink = notify.NewWebPushSink(subRepo, conf.PushSubscriber, vapidPublic, vapidPrivate)
	}

	// Getting services
	userService := service.NewUserService(userRepo, sessionRepo, validate, tokens)
	eventService := service.NewEventService(eventRepo, validate)
	noteService := service.NewNoteService(noteRepo, eventRepo, validate)
	pushService := service.NewPushService(subRepo, validate)
	notifier := service.NewNotifierService(eventRepo, sessionRepo, sink)

	// Periodic notification pass
	runner := cron.New()
	_, err = runner.AddFunc(conf.NotifyCron, func() {
		if err := notifier.RunPass(); err != nil {
			log.Errorf("notification pass failed: %v", err)
		}
	})
	if err != nil {
		log.Fatal("failed to schedule notification pass", err)
	}
	runner.Start()

	// Getting routes
	userRoutes := routes.NewUserDefault(userService, tokens)
	eventRoutes := routes.NewEventDefault(eventService, tokens)
	noteRoutes := routes.NewNoteDefault(noteService, tokens)
	pushRoutes := routes.NewPushDefault(pushService, tokens)

	e := echo.New()
	e.Use(middleware.CORS())

	// Users
	e.POST("/api/users", userRoutes.SignUp)
	e.POST("/api/users/login", userRoutes.Login)
	e.POST("/api/users/logout", userRoutes.Logout)
	e.GET("/api/users/:id", userRoutes.GetUser)
	e.DELETE("/api/users/@me", userRoutes.DeleteAccount)
	e.GET("/api/users/@me/preferences", userRoutes.GetPreferences)
	e.PUT("/api/users/@me/preferences", userRoutes.SetPreferences)

	// Events
	e.GET("/api/events", eventRoutes.GetEvents)
	e.GET("/api/events/next", eventRoutes.GetNextEvent)
	e.POST("/api/events", eventRoutes.CreateEvent)
	e.PUT("/api/events/:id", eventRoutes.UpdateEvent)
	e.DELETE("/api/events/:id", eventRoutes.DeleteEvent)

	// Notes
	e.GET("/api/notes", noteRoutes.GetNotes)
	e.GET("/api/events/:id/notes", noteRoutes.GetNotesForEvent)
	e.POST("/api/events/:id/notes", noteRoutes.CreateNote)
	e.PUT("/api/notes/:id", noteRoutes.UpdateNote)
	e.DELETE("/api/notes/:id", noteRoutes.DeleteNote)

	// Push subscriptions
	e.POST("/api/push/subscriptions", pushRoutes.Subscribe)
	e.DELETE("/api/push/subscriptions/:id", pushRoutes.Unsubscribe)

	go func() {
		if err := e.Start(conf.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	// Shutdown on SIGINT/SIGTERM: stop the cron runner, let an in-flight
	// notification pass finish, then drain the server.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Infof("signal received, shutting down: %s", sig.String())

	<-runner.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	_ = validate.RegisterValidation("dateformat", validators.IsDateFormat)
	_ = validate.RegisterValidation("timeformat", validators.IsTimeFormat)
}
