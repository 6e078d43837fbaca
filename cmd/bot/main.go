package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/thornmere/menagerie-bot-discord/internal/config"
	discordadapter "github.com/thornmere/menagerie-bot-discord/internal/discord"
	"github.com/thornmere/menagerie-bot-discord/internal/game"
	discordhandler "github.com/thornmere/menagerie-bot-discord/internal/handlers/discord"
	"github.com/thornmere/menagerie-bot-discord/internal/notify"
	"github.com/thornmere/menagerie-bot-discord/internal/repositories/pendingchoices"
	"github.com/thornmere/menagerie-bot-discord/internal/resolver"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
	"github.com/thornmere/menagerie-bot-discord/internal/storage/memory"
	"github.com/thornmere/menagerie-bot-discord/internal/storage/sqlite"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Bot Token: %s...%s", cfg.Discord.Token[:8], cfg.Discord.Token[len(cfg.Discord.Token)-4:])
	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	// Open the game store, falling back to memory when SQLite is unavailable
	var store storage.Store
	sqliteStore, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Printf("Failed to open database at %s: %v", cfg.Database.Path, err)
		log.Println("Falling back to in-memory store; state will not survive a restart")
		store = memory.NewStore()
	} else {
		log.Printf("Using SQLite database at %s", cfg.Database.Path)
		store = sqliteStore
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("Failed to close store: %v", closeErr)
		}
	}()

	// Redis carries pending choices and resolver wake-ups across processes;
	// without it both fall back to in-process equivalents.
	var (
		redisClient    *redis.Client
		pendingRepo    pendingchoices.Repository
		notifier       notify.Notifier
		waker          notify.Waker
		redisWaker     *notify.RedisWaker
		rootCtx        = context.Background()
		connectTimeout = 5 * time.Second
	)

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		log.Printf("Connecting to Redis at: %s", redisURL)

		opts, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
		} else {
			redisClient = redis.NewClient(opts)

			pingCtx, cancel := context.WithTimeout(rootCtx, connectTimeout)
			if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
				log.Printf("Failed to connect to Redis: %v", pingErr)
				redisClient = nil
			} else {
				log.Println("Successfully connected to Redis")
			}
			cancel()
		}
	}

	if redisClient != nil {
		pendingRepo = pendingchoices.NewRedisRepository(&pendingchoices.RedisRepoConfig{Client: redisClient})
		notifier = notify.NewRedisNotifier(redisClient, notify.DefaultChannel)
		redisWaker = notify.NewRedisWaker(rootCtx, redisClient, notify.DefaultChannel)
		waker = redisWaker
	} else {
		log.Println("Using in-process pending choices and resolver wake-ups")
		pendingRepo = pendingchoices.NewInMemoryRepository()
		local := notify.NewLocal()
		notifier = local
		waker = local
	}

	// Create the game service
	gameService := game.NewService(&game.ServiceConfig{
		Store:          store,
		PendingChoices: pendingRepo,
		Notifier:       notifier,
		StaleGrace:     cfg.Resolver.StaleGrace,
	})

	// Create the resolver loop, reporting into each guild's report channel
	loop := resolver.New(&resolver.Config{
		Game: gameService,
		Reporter: discordadapter.NewReporter(&discordadapter.ReporterConfig{
			Session:  dg,
			Channels: gameService,
		}),
		Waker:    waker,
		Interval: cfg.Resolver.Interval,
	})

	// Create Discord handler
	handler := discordhandler.NewHandler(&discordhandler.HandlerConfig{
		GameService: gameService,
	})
	dg.AddHandler(handler.HandleInteraction)

	// Open connection to Discord
	if err := dg.Open(); err != nil {
		log.Printf("Failed to open Discord connection: %v", err)
		return
	}
	defer func() {
		if clientErr := dg.Close(); clientErr != nil {
			log.Printf("Failed to close Discord connection: %v", clientErr)
		}
	}()

	// Register commands
	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		log.Printf("Failed to register commands: %v", err)
		return
	}
	if cfg.Discord.GuildID != "" {
		log.Printf("Registered commands for guild: %s", cfg.Discord.GuildID)
	} else {
		log.Println("Registered global commands (may take up to 1 hour to propagate)")
	}

	ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return loop.Run(groupCtx)
	})

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Printf("Resolver loop stopped: %v", err)
	}

	fmt.Println("Shutting down...")

	if redisWaker != nil {
		if err := redisWaker.Close(); err != nil {
			log.Printf("Error closing Redis subscription: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}
