package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexiusacademia/gotimber/internal/report"
	"github.com/alexiusacademia/gotimber/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	serveAddr  string
	serveRate  float64
	serveBurst int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the connection checks over HTTP",
	Long: `Start a JSON API over the connection checks.

Routes:
  POST /api/check          - Check a connection (JSON body)
  POST /api/report         - PDF report of a connection
  POST /api/batch          - Summary workbook of an uploaded xlsx ("file")
  GET  /api/tables/{name}  - Reference tables: wood, bolts, kmod, spacing
  GET  /healthz            - Liveness

Requests under /api are rate limited per client address. The server
stops gracefully on SIGINT or SIGTERM.

Examples:
  gotimber serve
  gotimber serve --addr :9000 --rate 2 --burst 5`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from GOTIMBER_ADDR or :8080)")
	serveCmd.Flags().Float64Var(&serveRate, "rate", 0, "Requests per second per client (default from GOTIMBER_RATE_LIMIT or 5)")
	serveCmd.Flags().IntVar(&serveBurst, "burst", 0, "Request burst per client (default from GOTIMBER_RATE_BURST or 10)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveRate > 0 {
		cfg.RateLimit = serveRate
	}
	if serveBurst > 0 {
		cfg.RateBurst = serveBurst
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	h := &server.Handler{Meta: report.Meta{Author: cfg.Author, Company: cfg.Company}}
	limiter := server.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	go limiter.RunEviction(ctx, time.Minute, server.IdleClientTTL)

	if err := server.Run(ctx, cfg.Addr, server.NewRouter(h, limiter)); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}
