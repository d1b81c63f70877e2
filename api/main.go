package main

import (
	"log"
	"net/http"
	"time"

	"eventhub/auth"
	"eventhub/config"
	"eventhub/data/repository"
	"eventhub/mailer"
)

type application struct {
	Config   config.Config
	Repo     repository.DBRepo
	Sessions *auth.SessionStore
	Tokens   *auth.TokenSource
	Notifier *mailer.Notifier

	// now is swappable in tests to pin "today".
	now func() time.Time
}

// today truncates the clock to a date, the granularity all upcoming/past
// bucketing works at.
func (app *application) today() time.Time {
	t := app.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app := &application{
		Config:   cfg,
		Sessions: auth.NewSessionStore(),
		Tokens:   auth.NewTokenSource(cfg.SecretKey),
		Notifier: &mailer.Notifier{
			Mailer:      mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.FromAddr),
			FrontendURL: cfg.FrontendURL,
		},
		now: time.Now,
	}

	db, err := app.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	defer db.Close()

	app.Repo = &repository.SqlRepo{DB: db}

	if err = app.Repo.RunMigrations("db"); err != nil {
		log.Fatal(err.Error())
	}

	log.Printf("Listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.routes()); err != nil {
		log.Fatal(err)
	}
}
