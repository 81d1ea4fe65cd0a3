package bootstrap

import (
	"context"
	"fmt"

	"robi-be/internal/config"
	"robi-be/internal/controller"
	"robi-be/internal/pkg/logger"
	"robi-be/internal/repository/contract"
	"robi-be/internal/repository/memory"
	redisRepo "robi-be/internal/repository/redis"
	"robi-be/internal/service"
	ws "robi-be/internal/websocket"
	"robi-be/pkg/agent"
	"robi-be/pkg/catalog"
	"robi-be/pkg/events"
	"robi-be/pkg/intent"
	"robi-be/pkg/llm/factory"
	"robi-be/pkg/session"

	pktNats "robi-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	EventsController    controller.IEventsController

	// Exposed for main.go
	AssistantService service.IAssistantService
	ConsumerService  service.IConsumerService
	Catalog          *catalog.Catalog
	Coordinator      *agent.Coordinator
	Hub              *ws.Hub
	Logger           logger.ILogger

	// Optional reload triggers, nil when disabled
	Watcher   *catalog.Watcher
	Scheduler *service.ReloadScheduler

	redis   redis.UniversalClient
	closers []func() error
}

func NewContainer(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Model provider and the file store that goes with it
	llmProvider, fileStore, err := factory.NewLLMProvider(ctx, factory.Settings{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		APIKey:   cfg.APIKey(),
		BaseURL:  providerBaseURL(cfg),
		Timeout:  cfg.Ai.LLMTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	sysLogger.Info("BOOTSTRAP", "Using LLM provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 2. Persona profiles and the resource catalog they read from
	profiles, err := agent.LoadProfiles(cfg.Ai.ProfilesFile, agent.DefaultProfiles(cfg.Resources.PriorityDocument))
	if err != nil {
		return nil, err
	}
	c.Catalog = catalog.New(fileStore, CatalogConfig(cfg, profiles), sysLogger)

	// 3. Response cache
	cache := c.responseCache(ctx, cfg)

	// 4. Event bus, optionally mirrored to NATS, streamed to websocket clients
	c.Hub = ws.NewHub(c.redis, sysLogger)

	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub.Close)

	var forward events.Publisher
	if cfg.Infra.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Infra.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
		} else {
			forward = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	publisherService := service.NewPublisherService(service.EventsTopic, pubSub, forward, sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, service.EventsTopic, c.Hub, sysLogger)

	// 5. Agents
	namePolicy, err := session.ParseNamePolicy(cfg.App.NamePolicy)
	if err != nil {
		return nil, err
	}
	coordinator, err := agent.NewCoordinator(agent.Config{
		LLM:        llmProvider,
		Resources:  c.Catalog,
		Session:    session.NewState(),
		Cache:      cache,
		Logger:     sysLogger,
		Timeout:    cfg.Ai.LLMTimeout,
		NamePolicy: namePolicy,
	}, profiles)
	if err != nil {
		return nil, err
	}
	c.Coordinator = coordinator

	// 6. Application service and controllers
	c.AssistantService = service.NewAssistantService(
		coordinator,
		c.Catalog,
		cache,
		publisherService,
		c.ConsumerService,
		service.AssistantOptions{
			ResourceDir:   cfg.Resources.Dir,
			LoadTimeout:   cfg.Resources.LoadTimeout,
			FlushOnReload: cfg.Cache.FlushOnReload,
		},
		sysLogger,
	)
	c.AssistantController = controller.NewAssistantController(c.AssistantService, cfg.Keys.AdminJWTSecret)
	c.EventsController = controller.NewEventsController(c.Hub)

	// 7. Reload triggers
	if cfg.Resources.Watch {
		c.Watcher = catalog.NewWatcher(cfg.Resources.Dir, cfg.Resources.Extensions, cfg.Resources.WatchDebounce,
			func(ctx context.Context) {
				if err := c.AssistantService.Reload(ctx); err != nil {
					sysLogger.Error("BOOTSTRAP", "Reload after resource change failed", map[string]interface{}{"error": err.Error()})
				}
			}, sysLogger)
	}
	if cfg.Resources.ReloadSchedule != "" {
		c.Scheduler, err = service.NewReloadScheduler(cfg.Resources.ReloadSchedule, c.AssistantService.Reload, sysLogger)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// CatalogConfig maps the resource settings onto the catalog. Priority documents come
// from the merged persona profiles so overrides apply to document ordering too.
func CatalogConfig(cfg *config.Config, profiles map[intent.Category]agent.Profile) catalog.Config {
	return catalog.Config{
		Extensions:        cfg.Resources.Extensions,
		PollInterval:      cfg.Resources.PollInterval,
		LoadTimeout:       cfg.Resources.LoadTimeout,
		UploadConcurrency: cfg.Resources.UploadConcurrency,
		Priority:          agent.PriorityDocuments(profiles),
		NavigationGuide:   cfg.Resources.NavigationGuide,
	}
}

func providerBaseURL(cfg *config.Config) string {
	switch cfg.Ai.LLMProvider {
	case "openai":
		return cfg.Ai.OpenAIBaseURL
	case "ollama":
		return cfg.Ai.OllamaBaseURL
	}
	return ""
}

// responseCache picks the configured backend. An unreachable redis degrades to the
// in-process cache.
func (c *Container) responseCache(ctx context.Context, cfg *config.Config) contract.ResponseCacheRepository {
	if cfg.Cache.Backend != "redis" {
		return memory.NewResponseCacheRepository(cfg.Cache.TTL)
	}

	opt, err := redis.ParseURL(cfg.Infra.RedisURL)
	if err != nil {
		c.Logger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: cfg.Infra.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("BOOTSTRAP", "Failed to connect to Redis, using in-memory response cache", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return memory.NewResponseCacheRepository(cfg.Cache.TTL)
	}
	c.redis = rdb
	c.closers = append(c.closers, rdb.Close)
	return redisRepo.NewResponseCacheRepository(rdb, redisRepo.DefaultPrefix, cfg.Cache.TTL)
}

// Close releases broker and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("BOOTSTRAP", "Close failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
