package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aescanero/dago-query-router/internal/config"
	"github.com/aescanero/dago-query-router/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Router routes a single client query
type Router interface {
	Route(ctx context.Context, employeeName, employeeEmail, query string) (*domain.RoutingResult, error)
}

// Worker represents the router worker
type Worker struct {
	id                string
	config            *config.Config
	redisClient       *redis.Client
	router            Router
	publisher         Publisher
	logger            *zap.Logger
	ctx               context.Context
	cancel            context.CancelFunc
	wg                sync.WaitGroup
	streamKey         string
	consumerGroup     string
	resultStream      string
	errorStream       string
	classifierTimeout time.Duration
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient *redis.Client,
	routerInstance Router,
	publisher Publisher,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:                cfg.WorkerID,
		config:            cfg,
		redisClient:       redisClient,
		router:            routerInstance,
		publisher:         publisher,
		logger:            logger,
		ctx:               ctx,
		cancel:            cancel,
		streamKey:         cfg.StreamKey,
		consumerGroup:     cfg.ConsumerGroup,
		resultStream:      cfg.ResultStream,
		errorStream:       cfg.ResultStream + ".errors",
		classifierTimeout: cfg.ClassifierTimeout,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting router worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	w.wg.Add(1)
	go w.processWork()

	w.logger.Info("router worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker and waits for the in-flight request, up to ctx's deadline
func (w *Worker) Stop(ctx context.Context) error {
	w.logger.Info("stopping router worker", zap.String("worker_id", w.id))

	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("worker did not stop in time: %w", ctx.Err())
	}

	w.logger.Info("router worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP error means the group already exists, which is fine
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	defer w.wg.Done()
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if err == redis.Nil || w.ctx.Err() != nil {
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				time.Sleep(time.Second)
				continue
			}

			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// handleMessage handles a single routing request message
func (w *Worker) handleMessage(message redis.XMessage) {
	w.logger.Info("processing routing request",
		zap.String("message_id", message.ID),
	)

	// Stop waits for this message instead of aborting it, so it runs detached from w.ctx
	ctx := context.WithoutCancel(w.ctx)

	w.process(ctx, message.ID, message.Values)

	// Failed requests are reported on the error stream, never redelivered
	w.acknowledgeMessage(ctx, message.ID)
}

// RouteRequest is the payload of a routing request message
type RouteRequest struct {
	RequestID     string `json:"request_id"`
	EmployeeName  string `json:"employee_name"`
	EmployeeEmail string `json:"employee_email"`
	Query         string `json:"query"`
}

// Decision is the payload published for a routed query
type Decision struct {
	RequestID string `json:"request_id"`
	WorkerID  string `json:"worker_id"`
	*domain.RoutingResult
}

// ErrorEvent is the payload published when a request could not be routed
type ErrorEvent struct {
	RequestID string    `json:"request_id"`
	WorkerID  string    `json:"worker_id"`
	Kind      string    `json:"kind"`
	Stage     string    `json:"stage"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// process routes one message and publishes either a decision or an error event
func (w *Worker) process(ctx context.Context, messageID string, values map[string]interface{}) {
	request, err := parseRouteRequest(values)
	if err != nil {
		w.logger.Error("failed to parse routing request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.publishError(ctx, messageID, domain.InvalidInput("malformed request: %v", err))
		return
	}

	routeCtx, cancel := context.WithTimeout(ctx, w.classifierTimeout)
	defer cancel()

	result, err := w.router.Route(routeCtx, request.EmployeeName, request.EmployeeEmail, request.Query)
	if err != nil {
		w.logger.Warn("routing request failed",
			zap.String("request_id", request.RequestID),
			zap.String("kind", string(domain.KindOf(err))),
			zap.Error(err),
		)
		w.publishError(ctx, request.RequestID, err)
		return
	}

	if err := w.publishDecision(ctx, request.RequestID, result); err != nil {
		w.logger.Error("failed to publish routing decision",
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
	}
}

// parseRouteRequest parses a routing request from a Redis message
func parseRouteRequest(values map[string]interface{}) (*RouteRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request RouteRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal routing request: %w", err)
	}

	if request.RequestID == "" {
		request.RequestID = uuid.NewString()
	}

	return &request, nil
}

// publishDecision publishes the routing decision
func (w *Worker) publishDecision(ctx context.Context, requestID string, result *domain.RoutingResult) error {
	data, err := json.Marshal(Decision{
		RequestID:     requestID,
		WorkerID:      w.id,
		RoutingResult: result,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	if err := w.publisher.Publish(ctx, w.resultStream, requestID, data); err != nil {
		return err
	}

	w.logger.Info("published routing decision",
		zap.String("request_id", requestID),
		zap.String("category", string(result.Category)),
		zap.String("handler", result.Handler.Name),
	)

	return nil
}

// publishError publishes an error event
func (w *Worker) publishError(ctx context.Context, requestID string, err error) {
	kind := domain.KindOf(err)
	if kind == "" {
		kind = domain.KindConfiguration
	}

	data, marshalErr := json.Marshal(ErrorEvent{
		RequestID: requestID,
		WorkerID:  w.id,
		Kind:      string(kind),
		Stage:     string(domain.StageOf(err)),
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	})
	if marshalErr != nil {
		w.logger.Error("failed to marshal error event", zap.Error(marshalErr))
		return
	}

	if publishErr := w.publisher.Publish(ctx, w.errorStream, requestID, data); publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(ctx context.Context, messageID string) {
	err := w.redisClient.XAck(ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
