// Command jbo_token mints bearer tokens for back-office staff when REQUIRE_AUTH is on.
// It signs with the same JWT_SECRET and JWT_ISSUER the server reads.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/platform/config"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils"
	"github.com/spf13/pflag"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	staffID := pflag.StringP("staff", "s", "", "staff id recorded as the actor on every write (required)")
	ttl := pflag.DurationP("ttl", "t", 12*time.Hour, "token lifetime")
	pflag.Parse()

	if *staffID == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := utils.IssueStaffToken(*staffID, cfg.JWTSecret, cfg.JWTIssuer, *ttl, time.Now())
	if err != nil {
		logger.Error("Failed to issue token", slog.String("staff_id", *staffID), slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Token issued", slog.String("staff_id", *staffID), slog.Duration("ttl", *ttl))
	fmt.Println(token)
}
