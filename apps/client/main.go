package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/activity"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/order"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/voice"
	logsvc "github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/services/logger"
	notifysvc "github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/services/notifier"
	speechsvc "github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/services/speech"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/storage/database"
	sqlxrepos "github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/storage/database/sqlx"
)

func main() {
	userID := flag.String("user", os.Getenv("CAMPUSAID_USER"), "id of the user to sign in as")
	flag.Parse()

	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "CLIENT : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal("opening DB", err)
	}
	defer func() { _ = db.Close() }()
	if err := database.Ping(db); err != nil {
		logger.Fatal("pinging DB", err)
	}

	// notification sinks: console for the terminal, websocket hub for the UI
	hub := notifysvc.NewWSHub(logger)
	defer hub.Close()
	notifier := notifysvc.Fanout(
		notifysvc.NewConsoleNotifier(log.New(os.Stdout, "TOAST : ", log.LstdFlags)),
		hub,
	)

	// =========================================================================
	// Set up Services

	idents := core.NewIdentitySignal()

	actSvc := activity.NewService(sqlxrepos.NewActivityRepository(db), idents, notifier, logger)
	defer actSvc.Close()
	ordSvc := order.NewService(sqlxrepos.NewOrderRepository(db), idents, notifier, logger)
	defer ordSvc.Close()

	// dictated text is recorded as a request activity
	recognizer := speechsvc.NewGatewayRecognizer(conf, logger)
	voiceCtl := voice.NewController(recognizer, notifier, logger, conf.Speech.Language, func(transcript string) {
		actSvc.Create(context.Background(), activity.NewActivity{
			Type:  activity.TypeRequest,
			Title: transcript,
		})
	})
	defer voiceCtl.Stop()

	// =========================================================================
	// Start notification push endpoint

	mux := http.NewServeMux()
	mux.Handle("/ws/notifications", hub)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("notification server", err)
		}
	}()

	// =========================================================================
	// Sign in & report

	if *userID != "" {
		idents.Set(*userID) // triggers the initial fetches
		for _, act := range actSvc.Activities() {
			fmt.Printf("activity %s [%s] %s (%s)\n", act.ID, act.Type, act.Title, act.Status)
		}
		for _, ord := range ordSvc.Orders() {
			fmt.Printf("order %s %.2f (%s)\n", ord.ID, ord.TotalAmount, ord.Status)
		}
	}

	// =========================================================================
	// Wait for shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		_ = srv.Close()
	}
}
