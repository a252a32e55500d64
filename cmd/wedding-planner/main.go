package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wedding-planner/internal/config"
	"wedding-planner/internal/handler"
	"wedding-planner/internal/models"
	"wedding-planner/internal/randomguest"
	"wedding-planner/internal/registry"
	"wedding-planner/internal/storage"
	"wedding-planner/internal/whatsapp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	fmt.Println("💍 Wedding Guest Planner")
	fmt.Println("========================")

	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := setupLogger(cfg.Log)
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("Planner stopped with error")
		closeLog()
		os.Exit(1)
	}
	fmt.Println("Goodbye! 👋")
}

func run(ctx context.Context, stop context.CancelFunc, cfg *config.Config, logger zerolog.Logger) error {
	store, err := storage.Open(ctx, storage.Options{
		Driver:   cfg.Storage.Driver,
		DataDir:  cfg.DataDir,
		RedisURL: cfg.Storage.RedisURL,
	})
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	// The controller reports background save failures, but it needs the
	// registry first
	var controller *handler.Controller
	syncLog := componentLogger(logger, "Syncer")
	syncer := registry.NewSyncer(store, registry.SyncerConfig{
		Key:     cfg.Storage.Key,
		Timeout: cfg.Storage.WriteTimeout,
		OnError: func(err error) {
			if controller != nil {
				controller.ReportPersistenceFault(err)
			}
		},
		Logger: &syncLog,
	})

	provider := randomguest.NewClient(&randomguest.Config{
		URL:     cfg.Random.URL,
		Timeout: cfg.Random.Timeout,
	}).WithLogger(componentLogger(logger, "RandomGuest"))

	guests, err := registry.New(store,
		registry.WithKey(cfg.Storage.Key),
		registry.WithProvider(provider),
		registry.WithSyncHook(syncer.Submit),
		registry.WithDateLayout(cfg.DateLayout),
		registry.WithLogger(componentLogger(logger, "Registry")),
	)
	if err != nil {
		return err
	}

	var service *whatsapp.Service
	if cfg.WhatsApp.Enabled {
		service, err = whatsapp.NewService(ctx, &whatsapp.Config{
			DataDir:    cfg.WhatsApp.DataDir,
			OwnerPhone: cfg.WhatsApp.OwnerPhone,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize WhatsApp service: %w", err)
		}
	}

	controllerLog := componentLogger(logger, "Controller")
	hcfg := &handler.Config{
		OwnerPhone: cfg.WhatsApp.OwnerPhone,
		Notifier:   handler.NotifierFunc(printNotification),
		Logger:     &controllerLog,
	}
	if service != nil {
		hcfg.Sharer = service
	}
	controller = handler.NewController(guests, hcfg)
	if service != nil {
		// before Connect, so no message arrives without a handler
		service.SetCommandHandler(controller.HandleOwnerMessage)
	}

	// Loading the list and pairing WhatsApp are independent
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := guests.Initialize(gctx); err != nil {
			// an unreadable list starts empty
			printNotification(handler.Notification{Kind: handler.KindError, Message: handler.UserMessage(err)})
			logger.Error().Err(err).Msg("Failed to load guests")
		}
		return nil
	})
	if service != nil {
		g.Go(func() error {
			fmt.Println("Connecting to WhatsApp...")
			if err := service.Connect(gctx); err != nil {
				return err
			}
			fmt.Println("✅ Connected to WhatsApp! Send 'help' from the owner phone for commands.")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		controller.Close()
		_ = syncer.Close(context.Background())
		return err
	}

	go func() {
		startCLI(ctx, os.Stdin, controller)
		stop()
	}()
	<-ctx.Done()

	fmt.Println("\nShutting down...")
	controller.Close()
	if service != nil {
		service.Disconnect()
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := syncer.Close(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error().Err(err).Msg("Last save failed")
	}
	return nil
}

func setupLogger(cfg config.LogConfig) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	closer := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	}
	if cfg.Format == "json" && cfg.File == "" {
		out = os.Stderr
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

func componentLogger(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

func printNotification(n handler.Notification) {
	if n.Message == "" {
		return
	}
	switch n.Kind {
	case handler.KindError:
		fmt.Printf("\n❌ %s\n", n.Message)
	case handler.KindSuccess:
		fmt.Printf("\n✅ %s\n", n.Message)
	default:
		fmt.Printf("\nℹ️  %s\n", n.Message)
	}
}

func printResult(r handler.Result) {
	if r.Message == "" {
		return
	}
	if r.Err != nil {
		fmt.Printf("❌ %s\n", r.Message)
		return
	}
	fmt.Printf("✅ %s\n", r.Message)
}

func startCLI(ctx context.Context, in io.Reader, c *handler.Controller) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Println("\nCommands:")
		fmt.Println("  1. View guests")
		fmt.Println("  2. Add guest")
		fmt.Println("  3. Add random guest")
		fmt.Println("  4. Update RSVP")
		fmt.Println("  5. Delete guest")
		fmt.Println("  6. Search by name")
		fmt.Println("  7. Filter by status")
		fmt.Println("  8. Stats")
		fmt.Println("  9. Share summary on WhatsApp")
		fmt.Println("  c. Clear all guests")
		fmt.Println("  0. Exit")
		fmt.Print("\nEnter command (0-9): ")

		if !scanner.Scan() {
			return
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			viewGuests(c.View())
		case "2":
			addGuest(scanner, c)
		case "3":
			addRandomGuest(ctx, c)
		case "4":
			updateRSVP(scanner, c)
		case "5":
			deleteGuest(scanner, c)
		case "6":
			fmt.Print("Search (empty to clear): ")
			if !scanner.Scan() {
				return
			}
			viewGuests(c.SetSearch(scanner.Text()).View)
		case "7":
			setFilter(scanner, c)
		case "8":
			fmt.Println("\n📊 " + c.Stats().Summary())
		case "9":
			printResult(c.ShareSummary(ctx))
		case "c", "C":
			fmt.Print("Remove every guest? [y/N]: ")
			if !scanner.Scan() {
				return
			}
			if strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				printResult(c.ClearAll())
			}
		case "0":
			fmt.Println("Exiting...")
			return
		default:
			fmt.Println("Invalid command. Please try again.")
		}
	}
}

func viewGuests(v handler.View) {
	fmt.Printf("\n📋 Guests (%d shown, filter: %s", len(v.Guests), v.Filter)
	if v.Search != "" {
		fmt.Printf(", search: %q", v.Search)
	}
	fmt.Println(")")
	fmt.Println(strings.Repeat("-", 60))
	if len(v.Guests) == 0 {
		fmt.Println("No guests found.")
	}
	for i, guest := range v.Guests {
		random := ""
		if guest.IsRandom {
			random = " 🎲"
		}
		fmt.Printf("%2d. %s%s\n", i+1, guest.Name, random)
		fmt.Printf("    RSVP: %s | Added: %s\n", guest.RSVP, guest.AddedDate)
	}
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(v.Stats.Summary())
}

func addGuest(scanner *bufio.Scanner, c *handler.Controller) {
	c.BeginAdd()
	for {
		fmt.Print("Enter guest name (empty to cancel): ")
		if !scanner.Scan() {
			c.CancelAdd()
			return
		}
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			c.CancelAdd()
			return
		}
		c.StageName(name)

		fmt.Print("RSVP [yes/no/maybe] (default maybe): ")
		if !scanner.Scan() {
			c.CancelAdd()
			return
		}
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			status, err := models.ParseRSVP(text)
			if err != nil {
				fmt.Printf("❌ %s\n", handler.UserMessage(err))
				continue
			}
			c.StageRSVP(status)
		}

		r := c.SubmitAdd()
		printResult(r)
		if r.Err == nil {
			return
		}
	}
}

func addRandomGuest(ctx context.Context, c *handler.Controller) {
	results, err := c.StartRandom(ctx)
	if err != nil {
		fmt.Printf("❌ %s\n", handler.UserMessage(err))
		return
	}
	fmt.Println("⏳ Fetching a random guest...")
	go func() {
		for r := range results {
			if r.Message != "" {
				fmt.Println()
				printResult(r)
			}
		}
	}()
}

func pickGuest(scanner *bufio.Scanner, c *handler.Controller) (models.Guest, bool) {
	v := c.View()
	viewGuests(v)
	if len(v.Guests) == 0 {
		return models.Guest{}, false
	}
	fmt.Printf("Select guest (1-%d): ", len(v.Guests))
	if !scanner.Scan() {
		return models.Guest{}, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n < 1 || n > len(v.Guests) {
		fmt.Println("Invalid choice.")
		return models.Guest{}, false
	}
	return v.Guests[n-1], true
}

func updateRSVP(scanner *bufio.Scanner, c *handler.Controller) {
	guest, ok := pickGuest(scanner, c)
	if !ok {
		return
	}
	fmt.Printf("New RSVP for %s [yes/no/maybe]: ", guest.Name)
	if !scanner.Scan() {
		return
	}
	status, err := models.ParseRSVP(scanner.Text())
	if err != nil {
		fmt.Printf("❌ %s\n", handler.UserMessage(err))
		return
	}
	if r := c.SetRSVP(guest.ID, status); r.Err != nil {
		printResult(r)
		return
	}
	fmt.Printf("✅ %s is now %s\n", guest.Name, status)
}

func deleteGuest(scanner *bufio.Scanner, c *handler.Controller) {
	guest, ok := pickGuest(scanner, c)
	if !ok {
		return
	}
	r := c.RequestDelete(guest.ID)
	if r.Err != nil {
		printResult(r)
		return
	}
	fmt.Printf("%s [y/N]: ", r.Message)
	if !scanner.Scan() {
		c.CancelDelete()
		return
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		printResult(c.ConfirmDelete())
	default:
		c.CancelDelete()
		fmt.Println("Cancelled.")
	}
}

func setFilter(scanner *bufio.Scanner, c *handler.Controller) {
	fmt.Println("\nSelect status:")
	fmt.Println("  1. All")
	fmt.Println("  2. Yes")
	fmt.Println("  3. No")
	fmt.Println("  4. Maybe")
	fmt.Print("Enter choice (1-4): ")

	if !scanner.Scan() {
		return
	}

	var filter models.StatusFilter
	switch strings.TrimSpace(scanner.Text()) {
	case "1":
		filter = models.FilterAll
	case "2":
		filter = models.FilterFor(models.RSVPYes)
	case "3":
		filter = models.FilterFor(models.RSVPNo)
	case "4":
		filter = models.FilterFor(models.RSVPMaybe)
	default:
		fmt.Println("Invalid choice.")
		return
	}

	r := c.SetFilter(filter)
	if r.Err != nil {
		printResult(r)
		return
	}
	viewGuests(r.View)
}
