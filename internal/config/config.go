package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	AllowedOrigins []string

	ClubName    string
	NotifyEmail string

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	MailFromName string

	// SinkBackend selects where submission rows are persisted:
	// "sheets" for the Google Sheets API, "workbook" for a local .xlsx file.
	SinkBackend       string
	SheetsCredentials string
	SpreadsheetID     string
	WorkbookPath      string

	UploadDir string
}

func Load() *Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	return &Config{
		Addr:           getEnv("ADDR", ":8080"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "*")),

		ClubName:    getEnv("CLUB_NAME", "Metaverse Club"),
		NotifyEmail: getEnv("NOTIFY_EMAIL", ""),

		MailHost:     getEnv("MAIL_HOST", "smtp.gmail.com"),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUsername: getEnv("MAIL_USERNAME", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),
		MailFromName: getEnv("MAIL_FROM_NAME", ""),

		SinkBackend:       getEnv("SINK_BACKEND", "workbook"),
		SheetsCredentials: getEnv("SHEETS_CREDENTIALS", "credentials.json"),
		SpreadsheetID:     getEnv("SPREADSHEET_ID", ""),
		WorkbookPath:      getEnv("WORKBOOK_PATH", "data/registrations.xlsx"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
