package service

import (
	"context"
	"errors"
	"time"

	"robi-be/internal/dto"
	"robi-be/internal/pkg/logger"
	"robi-be/internal/repository/contract"
	"robi-be/pkg/agent"
	"robi-be/pkg/catalog"
	"robi-be/pkg/events"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("robi-be/internal/service")

type IAssistantService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	Reload(ctx context.Context) error
	Health(ctx context.Context) *dto.HealthResponse
}

type AssistantOptions struct {
	ResourceDir   string
	LoadTimeout   time.Duration
	FlushOnReload bool
}

type assistantService struct {
	coordinator *agent.Coordinator
	catalog     *catalog.Catalog
	cache       contract.ResponseCacheRepository
	publisher   IPublisherService
	consumer    IConsumerService
	opts        AssistantOptions
	logger      logger.ILogger
}

func NewAssistantService(
	coordinator *agent.Coordinator,
	catalog *catalog.Catalog,
	cache contract.ResponseCacheRepository,
	publisher IPublisherService,
	consumer IConsumerService,
	opts AssistantOptions,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		coordinator: coordinator,
		catalog:     catalog,
		cache:       cache,
		publisher:   publisher,
		consumer:    consumer,
		opts:        opts,
		logger:      log,
	}
}

func (s *assistantService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	ctx, span := tracer.Start(ctx, "assistant.Ask")
	defer span.End()

	previousName := s.coordinator.Session().UserName()

	ans, err := s.coordinator.Route(ctx, req.Query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("robi.category", string(ans.Category)),
		attribute.Bool("robi.cached", ans.Timings.Cached),
	)
	if ans.Err != nil {
		span.RecordError(ans.Err)
	}

	data := map[string]interface{}{
		"category":      string(ans.Category),
		"cached":        ans.Timings.Cached,
		"response_time": ans.Timings.ResponseTime,
		"total_time":    ans.Timings.TotalTime,
		"degraded":      ans.Err != nil,
	}
	if ans.Err != nil {
		data["error"] = ans.Err.Error()
	}
	s.publish(ctx, events.New(events.QueryAnswered, data))

	if ans.Timings.NameUpdate {
		s.publish(ctx, events.New(events.UserNameChanged, map[string]interface{}{
			"previous": previousName,
			"current":  s.coordinator.Session().UserName(),
		}))
	}

	return &dto.AskResponse{
		Query:   req.Query,
		Answer:  ans.Text,
		Timings: ans.Timings,
	}, nil
}

// Reload re-ingests the resource directory. Answers cached against the previous
// document set are dropped when FlushOnReload is set.
func (s *assistantService) Reload(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "assistant.Reload")
	defer span.End()

	if s.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.LoadTimeout)
		defer cancel()
	}

	wasReady := s.catalog.IsReady()
	start := time.Now()
	if err := s.catalog.Load(ctx, s.opts.ResourceDir); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		data := map[string]interface{}{"dir": s.opts.ResourceDir, "error": err.Error()}
		var ie *catalog.IngestionError
		if errors.As(err, &ie) {
			data["document"] = ie.Document
			data["state"] = string(ie.State)
		}
		s.publish(ctx, events.New(events.ResourcesReloadFailed, data))
		return err
	}

	if wasReady && s.opts.FlushOnReload && s.cache != nil {
		if err := s.cache.Flush(ctx); err != nil {
			s.logger.Warn("ASSISTANT", "Failed to flush response cache", map[string]interface{}{"error": err.Error()})
		}
	}

	s.publish(ctx, events.New(events.ResourcesReloaded, map[string]interface{}{
		"dir":        s.opts.ResourceDir,
		"documents":  len(s.catalog.Documents()),
		"generation": s.catalog.Generation(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	}))
	return nil
}

func (s *assistantService) Health(ctx context.Context) *dto.HealthResponse {
	categories := s.coordinator.Agents()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}

	res := &dto.HealthResponse{
		Status:          "ok",
		ResourcesLoaded: s.catalog.IsReady(),
		Documents:       len(s.catalog.Documents()),
		Generation:      s.catalog.Generation(),
		UserName:        s.coordinator.Session().UserName(),
		Agents:          names,
	}
	if s.consumer != nil {
		res.Events = s.consumer.Counts()
	}
	return res
}

func (s *assistantService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("ASSISTANT", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
