package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/clients/sportradar"
	"github.com/KirkDiggler/lightthelamp/internal/common/clock"
	"github.com/KirkDiggler/lightthelamp/internal/common/keylock"
	"github.com/KirkDiggler/lightthelamp/internal/common/uuid"
	"github.com/KirkDiggler/lightthelamp/internal/config"
	"github.com/KirkDiggler/lightthelamp/internal/events"
	"github.com/KirkDiggler/lightthelamp/internal/handlers/discord"
	"github.com/KirkDiggler/lightthelamp/internal/handlers/httpapi"
	"github.com/KirkDiggler/lightthelamp/internal/handlers/ws"
	membershipRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/membership"
	pickRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/pick"
	rosterRepo "github.com/KirkDiggler/lightthelamp/internal/repositories/roster"
	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
	"github.com/KirkDiggler/lightthelamp/internal/storage/postgres"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// app holds everything the server runs, in the order it must be shut down
type app struct {
	handler http.Handler
	closers []func() error
}

func (a *app) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse order of creation
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("Error during shutdown")
		}
	}
}

type stores struct {
	membership membershipRepo.Repository
	picks      pickRepo.Repository
	rosters    rosterRepo.Repository
}

func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	clk := clock.New()

	st, err := newStores(ctx, cfg, clk, a)
	if err != nil {
		return nil, err
	}

	source, err := newRosterSource(cfg)
	if err != nil {
		return nil, err
	}

	rosterService, err := roster.New(&roster.Config{
		RosterRepo: st.rosters,
		Source:     source,
		RosterTTL:  cfg.Roster.RosterTTL,
		GameTTL:    cfg.Roster.GameTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roster service: %w", err)
	}

	refresher, err := roster.NewRefresher(&roster.RefresherConfig{
		Service:  rosterService,
		Interval: cfg.Roster.RefreshInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roster refresher: %w", err)
	}
	refresher.Start()
	a.onClose(refresher.Stop)

	hub := ws.NewHub(nil)
	a.onClose(func() error {
		hub.Close()
		return nil
	})

	publishers := events.Multi{hub}
	if cfg.NATS.URL != "" {
		jsCfg := events.DefaultJetStreamConfig()
		jsCfg.URL = cfg.NATS.URL
		jsCfg.StreamName = cfg.NATS.StreamName
		jsCfg.SubjectPrefix = cfg.NATS.SubjectPrefix

		js, err := events.NewJetStreamPublisher(ctx, jsCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create JetStream publisher: %w", err)
		}
		a.onClose(js.Close)
		publishers = append(publishers, js)
	}

	draftService, err := draft.New(&draft.Config{
		MembershipRepo: st.membership,
		PickRepo:       st.picks,
		RosterService:  rosterService,
		Clock:          clk,
		UUIDGenerator:  uuid.New(),
		Publisher:      publishers,
		Locks:          keylock.New(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create draft service: %w", err)
	}
	hub.SetLoader(draftService)

	wsHandler, err := ws.NewHandler(&ws.HandlerConfig{
		Hub:    hub,
		Loader: draftService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create websocket handler: %w", err)
	}

	a.handler, err = httpapi.NewRouter(&httpapi.Config{
		DraftService:   draftService,
		RosterService:  rosterService,
		DraftSocket:    wsHandler.ServeDraft,
		AllowedOrigins: cfg.App.AllowedOrigins,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	if cfg.Discord.Token != "" {
		bot, err := discord.New(&discord.Config{
			Token:         cfg.Discord.Token,
			ApplicationID: cfg.Discord.ApplicationID,
			GuildID:       cfg.Discord.GuildID,
			DraftService:  draftService,
			RosterService: rosterService,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord bot: %w", err)
		}
		if err := bot.Start(); err != nil {
			return nil, fmt.Errorf("failed to start Discord bot: %w", err)
		}
		a.onClose(bot.Stop)
	} else {
		log.Info().Msg("DISCORD_TOKEN not set, Discord bot disabled")
	}

	return a, nil
}

func newRedisClient(ctx context.Context, cfg *config.Config, a *app) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	a.onClose(client.Close)
	return client, nil
}

func newStores(ctx context.Context, cfg *config.Config, clk clock.Clock, a *app) (*stores, error) {
	if cfg.Store.Backend == config.StoreMemory {
		return &stores{
			membership: membershipRepo.NewMemory(),
			picks:      pickRepo.NewMemory(),
			rosters:    rosterRepo.NewMemory(clk),
		}, nil
	}

	// Rosters are cached in Redis for every persistent backend
	redisClient, err := newRedisClient(ctx, cfg, a)
	if err != nil {
		return nil, err
	}
	rosters, err := rosterRepo.NewRedis(&rosterRepo.Config{RedisClient: redisClient})
	if err != nil {
		return nil, fmt.Errorf("failed to create roster repository: %w", err)
	}

	st := &stores{rosters: rosters}

	switch cfg.Store.Backend {
	case config.StorePostgres:
		pool, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		a.onClose(func() error {
			pool.Close()
			return nil
		})

		if st.membership, err = membershipRepo.NewPostgres(&membershipRepo.PostgresConfig{DB: pool}); err != nil {
			return nil, fmt.Errorf("failed to create membership repository: %w", err)
		}
		if st.picks, err = pickRepo.NewPostgres(&pickRepo.PostgresConfig{DB: pool}); err != nil {
			return nil, fmt.Errorf("failed to create pick repository: %w", err)
		}

	default:
		if st.membership, err = membershipRepo.NewRedis(&membershipRepo.Config{RedisClient: redisClient}); err != nil {
			return nil, fmt.Errorf("failed to create membership repository: %w", err)
		}
		if st.picks, err = pickRepo.NewRedis(&pickRepo.Config{RedisClient: redisClient}); err != nil {
			return nil, fmt.Errorf("failed to create pick repository: %w", err)
		}
	}

	return st, nil
}

func newRosterSource(cfg *config.Config) (roster.Source, error) {
	if cfg.Roster.Source != config.SourceSportradar {
		return roster.NewStaticSource(), nil
	}

	client, err := sportradar.New(&sportradar.Config{
		APIKey:  cfg.Roster.Sportradar.APIKey,
		BaseURL: cfg.Roster.Sportradar.BaseURL,
		Timeout: cfg.Roster.Sportradar.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Sportradar client: %w", err)
	}

	source, err := roster.NewSportradarSource(&roster.SportradarSourceConfig{
		Client:         client,
		Clock:          clock.New(),
		GameID:         cfg.Roster.GameID,
		Team:           cfg.Roster.Team,
		SeasonType:     cfg.Roster.Sportradar.SeasonType,
		ScheduleWindow: cfg.Roster.Sportradar.ScheduleWindow,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Sportradar source: %w", err)
	}
	return source, nil
}
