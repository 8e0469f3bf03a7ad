package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/metaverse-club/clubforms/internal/config"
	"github.com/metaverse-club/clubforms/internal/handler"
	"github.com/metaverse-club/clubforms/internal/logger"
	"github.com/metaverse-club/clubforms/internal/mailer"
	"github.com/metaverse-club/clubforms/internal/models"
	"github.com/metaverse-club/clubforms/internal/router"
	"github.com/metaverse-club/clubforms/internal/service"
	"github.com/metaverse-club/clubforms/internal/storage"
	"github.com/metaverse-club/clubforms/internal/store"
)

func main() {
	cfg := config.Load()

	log := logger.New()
	defer log.Sync()

	headers := models.Headers()

	// Record store: remote spreadsheet or local workbook, by config.
	var records store.RecordStore
	switch cfg.SinkBackend {
	case "sheets":
		gs, err := store.NewGoogleSheet(context.Background(), cfg.SheetsCredentials, cfg.SpreadsheetID, headers)
		if err != nil {
			log.Fatal("sheets client init failed", zap.Error(err))
		}
		records = gs
	default:
		records = store.NewWorkbook(cfg.WorkbookPath, headers)
	}

	mail := mailer.NewSMTPSender(mailer.Config{
		Host:     cfg.MailHost,
		Port:     cfg.MailPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
		To:       cfg.NotifyEmail,
	})
	files := storage.NewFileStore(cfg.UploadDir)

	subSvc := service.NewSubmissions(records, mail, files, cfg.ClubName, log)
	subH := handler.NewSubmissionHandler(subSvc)

	r := router.New(cfg.AllowedOrigins, log, subH)

	log.Info("clubforms server starting",
		zap.String("addr", cfg.Addr),
		zap.String("sink", cfg.SinkBackend),
		zap.String("upload_dir", cfg.UploadDir),
	)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
