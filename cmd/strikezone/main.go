package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/strikezone/server/internal/config"
	"github.com/strikezone/server/internal/core/engine"
	"github.com/strikezone/server/internal/core/event"
	"github.com/strikezone/server/internal/core/loop"
	coresys "github.com/strikezone/server/internal/core/system"
	"github.com/strikezone/server/internal/data"
	"github.com/strikezone/server/internal/factory"
	gonet "github.com/strikezone/server/internal/net"
	"github.com/strikezone/server/internal/persist"
	"github.com/strikezone/server/internal/scripting"
	"github.com/strikezone/server/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

// recentMatches is how many stored matches are listed at boot.
const recentMatches = 5

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            strikezone  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      fixed-step FPS simulation server     \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", serverName)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// matchHistory formats stored matches, newest first, one line each.
func matchHistory(ms []persist.MatchRecord) []string {
	lines := make([]string, 0, len(ms))
	for _, m := range ms {
		outcome := "survived"
		if m.PlayerDied {
			outcome = "died"
		}
		lines = append(lines, fmt.Sprintf("%s  %-12s score %-6d %s after %s",
			m.EndedAt.Format("2006-01-02 15:04"), m.Level, m.Score, outcome,
			time.Duration(m.SimSeconds*float64(time.Second)).Round(time.Second)))
	}
	return lines
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("STRIKEZONE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	switch cfg.Debug.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Debug.ProfileDir), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(cfg.Debug.ProfileDir), profile.NoShutdownHook).Stop()
	}

	// 3. Load tuning data
	printSection("data")
	weapons, err := data.LoadWeaponTable(cfg.Data.Weapons)
	if err != nil {
		return fmt.Errorf("weapons: %w", err)
	}
	printStat("weapons", weapons.Count())
	enemies, err := data.LoadEnemyTable(cfg.Data.Enemies)
	if err != nil {
		return fmt.Errorf("enemies: %w", err)
	}
	printStat("enemy types", enemies.Count())
	level, err := data.LoadLevel(cfg.Data.Level, weapons, enemies)
	if err != nil {
		return fmt.Errorf("level: %w", err)
	}
	printStat("level brushes", len(level.Geometry))
	printStat("enemy spawns", len(level.Enemies))

	scripts, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scripts.Close()
	printOK("lua scripts loaded")
	fmt.Println()

	// 4. Optional match persistence
	var recorder system.MatchRecorder
	if cfg.Database.DSN != "" {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.Open(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := db.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printStat("schema version", int(version))
		printOK("migrations applied")

		repo := persist.NewMatchRepo(db)
		recent, err := repo.RecentMatches(ctx, recentMatches)
		if err != nil {
			return fmt.Errorf("match history: %w", err)
		}
		printStat("recent matches", len(recent))
		for _, line := range matchHistory(recent) {
			fmt.Printf("    \033[90m%s\033[0m\n", line)
		}
		fmt.Println()
		recorder = repo
	}

	// 5. Network bridge
	var (
		netServer *gonet.Server
		hub       *gonet.Hub
		source    system.InputSource
		out       system.Broadcaster
	)
	if cfg.Network.Enabled {
		netServer = gonet.NewServer(cfg.Network, log)
		hub = gonet.NewHub(netServer.NewSessions(), cfg.Network.MaxMessagesPerTick, log)
		hub.OnAccept(func(s *gonet.Session) any {
			return gonet.Welcome{
				Type:      gonet.TypeWelcome,
				Session:   s.ID,
				FrameRate: cfg.Loop.FrameRate,
				Level:     level.Name,
				Control:   hub.Controller() == s,
			}
		})
		source, out = hub, hub
	}

	// 6. Engine, systems, level
	g := engine.New(log)
	bus := event.NewBus()
	stats := system.NewStatsSystem(bus, scripts, recorder, level.Name, log)

	for _, s := range []coresys.System{
		system.NewEventsSystem(bus),
		system.NewInputSystem(source, log),
		system.NewMovementSystem(cfg.Input.MouseSensitivity),
		system.NewEnemyAISystem(scripts, bus),
		system.NewWeaponSystem(g, bus, log),
		system.NewPhysicsSystem(cfg.Physics.Gravity, cfg.Physics.GroundLevel, bus),
		system.NewProjectileSystem(scripts, cfg.Physics.GroundLevel, bus),
		system.NewHealthSystem(bus, log),
		stats,
		system.NewHUDSystem(out, stats, cfg.Network.HUDInterval, log),
		system.NewCleanupSystem(log),
	} {
		if err := g.RegisterSystem(s); err != nil {
			return fmt.Errorf("register system: %w", err)
		}
	}

	factory.SpawnInput(g)
	playerID, err := factory.SpawnLevel(g, level, weapons, enemies)
	if err != nil {
		return fmt.Errorf("spawn level: %w", err)
	}
	if err := g.Init(); err != nil {
		return err
	}
	log.Debug("level spawned", zap.Uint64("player", uint64(playerID)), zap.Int("entities", g.World().Len()))

	// 7. Game loop
	driver := loop.NewTickerDriver(cfg.Loop.RefreshRate)
	gameLoop := loop.New(loop.Config{FrameRate: cfg.Loop.FrameRate, MaxDeltaTime: cfg.Loop.MaxDeltaTime}, driver, log)
	gameLoop.Subscribe(g.Update)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	printSection("ready")
	printReady(fmt.Sprintf("systems %s", strings.Join(g.SystemOrder(), " → ")))
	printReady(fmt.Sprintf("game loop (step: %s, refresh: %s)", gameLoop.TimeStep(), driver.Interval()))
	if netServer != nil {
		printReady(fmt.Sprintf("websocket %s%s", cfg.Network.BindAddress, cfg.Network.Path))
	}
	fmt.Println()

	gameLoop.Start()

	// Every frame, and the shutdown below, runs on this goroutine.
	eg.Go(func() error {
		err := driver.Run(ctx)
		gameLoop.Stop()
		if hub != nil {
			hub.CloseAll()
		}
		g.Shutdown()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if netServer != nil {
		eg.Go(func() error {
			return netServer.ListenAndServe(ctx)
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
