package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/invitia/guestlist-backend-go/internal/config"
	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
	"github.com/invitia/guestlist-backend-go/internal/pkg/blobstore"
	"github.com/invitia/guestlist-backend-go/internal/pkg/validator"
	"github.com/invitia/guestlist-backend-go/internal/repository/memory"
	guestService "github.com/invitia/guestlist-backend-go/internal/service/guest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})).With(
		slog.String("app", "guestlist"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	var store blobstore.BlobStore
	switch cfg.Storage.Type {
	case "memory":
		store = blobstore.NewMemoryStore()
	case "file":
		store, err = blobstore.NewLocalStore(cfg.Storage.Path)
	case "sqlite":
		if err := os.MkdirAll(cfg.Storage.Path, 0755); err != nil {
			log.Fatal("Failed to create storage directory: ", err)
		}
		store, err = blobstore.NewSQLiteStore(filepath.Join(cfg.Storage.Path, "guestlist.db"))
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}
	defer store.Close()

	repo, err := memory.NewGuestRepository(store)
	if err != nil {
		log.Fatal("Failed to load guest list: ", err)
	}
	svc := guestService.NewGuestService(repo)

	slog.Info("Guest list ready", "event", cfg.Event.Name, "storage", cfg.Storage.Type)

	command := "stats"
	args := []string{}
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	ctx := context.Background()
	switch command {
	case "stats":
		runStats(ctx, svc)
	case "list":
		runList(ctx, svc, args)
	case "demo":
		if err := svc.LoadDemoData(ctx); err != nil {
			log.Fatal("Failed to load demo data: ", err)
		}
		runStats(ctx, svc)
	case "clear":
		if err := svc.ClearAllData(ctx); err != nil {
			log.Fatal("Failed to clear guest list: ", err)
		}
	case "reset":
		if err := svc.ResetToInitialState(ctx); err != nil {
			log.Fatal("Failed to reset guest list: ", err)
		}
		runStats(ctx, svc)
	case "export":
		runExport(ctx, svc, args)
	case "import":
		runImport(ctx, svc, args)
	default:
		fmt.Println("usage: guestlist [stats|list|demo|clear|reset|export|import]")
		os.Exit(2)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func runStats(ctx context.Context, svc guest.GuestService) {
	stats, err := svc.GetStats(ctx)
	if err != nil {
		log.Fatal("Failed to compute stats: ", err)
	}

	fmt.Printf("total: %d\n", stats.Total)
	fmt.Printf("confirmed: %d (%.1f%%)\n", stats.Confirmed, stats.ConfirmationRate)
	fmt.Printf("declined: %d\n", stats.Declined)
	fmt.Printf("awaiting response: %d\n", stats.Pending)
	fmt.Printf("not invited: %d\n", stats.NotInvited)
	fmt.Printf("confirmed people incl. companions: %d\n", stats.TotalConfirmedPeople)
	fmt.Printf("response rate: %.1f%%\n", stats.ResponseRate)
}

// parseDateFlag accepts a plain date or a full RFC3339 timestamp.
func parseDateFlag(value string) (time.Time, bool) {
	if ts, ok := validator.IsValidDateTime(value); ok {
		return ts, true
	}
	return validator.IsValidDate(value)
}

func runList(ctx context.Context, svc guest.GuestService, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", "all", "filter by status")
	search := fs.String("search", "", "substring match on name, phone or email")
	from := fs.String("from", "", "only guests invited on or after this date")
	to := fs.String("to", "", "only guests invited on or before this date")
	fs.Parse(args)

	filters := guest.GuestFilters{
		Status: *status,
		Search: *search,
		SortBy: "name",
	}
	if *from != "" {
		ts, ok := parseDateFlag(*from)
		if !ok {
			log.Fatal("Invalid -from date: ", *from)
		}
		filters.DateFrom = &ts
	}
	if *to != "" {
		ts, ok := parseDateFlag(*to)
		if !ok {
			log.Fatal("Invalid -to date: ", *to)
		}
		filters.DateTo = &ts
	}

	result, err := svc.GetFilteredGuests(ctx, filters, nil)
	if err != nil {
		log.Fatal("Failed to list guests: ", err)
	}

	for _, g := range result.Items {
		fmt.Printf("%-10s %-25s %-14s %s\n", g.Status, g.Name, g.Phone, g.InvitationCode)
	}
	fmt.Printf("%d guest(s)\n", result.Total)
}

func runExport(ctx context.Context, svc guest.GuestService, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", guest.FormatCSV, "export format: csv or json")
	out := fs.String("out", "", "output file (stdout when empty)")
	withStats := fs.Bool("stats", false, "append aggregate stats")
	fs.Parse(args)

	data, err := svc.ExportGuests(ctx, guest.ExportOptions{
		Format:       *format,
		IncludeStats: *withStats,
	})
	if err != nil {
		log.Fatal("Failed to export guests: ", err)
	}

	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatal("Failed to write export file: ", err)
	}
	slog.Info("Exported guest list", "file", *out, "bytes", len(data))
}

func runImport(ctx context.Context, svc guest.GuestService, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "csv file to import")
	send := fs.Bool("send", false, "mark imported guests as invited immediately")
	fs.Parse(args)

	if *file == "" {
		log.Fatal("import requires -file")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("Failed to open import file: ", err)
	}
	defer f.Close()

	result, err := svc.ImportGuests(ctx, f, guest.BulkInviteOptions{SendImmediately: *send})
	if err != nil {
		log.Fatal("Failed to import guests: ", err)
	}

	fmt.Printf("imported %d of %d guest(s)\n", result.SuccessCount, result.Total)
	for _, failure := range result.Failed {
		fmt.Printf("row %d (%s): %s\n", failure.Index+1, failure.Name, failure.Reason)
	}
}
