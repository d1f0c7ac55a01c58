package notification

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/notification"
	"github.com/furnishop/shop-backend-go/internal/pkg/metrics"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int           // default: 2
	QueueSize   int           // default: 100
	SendTimeout time.Duration // default: 15 seconds
}

type service struct {
	sender  notification.Sender
	metrics *metrics.Metrics
	config  Config

	queue  chan notification.SendMessageRequest
	wg     sync.WaitGroup
	stopCh chan struct{}
	once   sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(sender notification.Sender, m *metrics.Metrics, cfg Config) notification.Service {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 15 * time.Second
	}

	s := &service{
		sender:  sender,
		metrics: m,
		config:  cfg,
		queue:   make(chan notification.SendMessageRequest, cfg.QueueSize),
		stopCh:  make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return s
}

// worker drains the queue until Stop, then sends whatever is still buffered
func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case req := <-s.queue:
			s.deliver(req, id)
		case <-s.stopCh:
			for {
				select {
				case req := <-s.queue:
					s.deliver(req, id)
				default:
					return
				}
			}
		}
	}
}

func (s *service) deliver(req notification.SendMessageRequest, worker int) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.SendTimeout)
	defer cancel()

	if result := s.send(ctx, req); !result.Success {
		slog.Warn("Queued notification not delivered",
			"worker", worker,
			"recipient_id", req.RecipientID,
			"error", result.Error,
		)
	}
}

// SendMessage delivers req once and reports the outcome. It never returns an
// error; validation and delivery failures are carried in the result.
func (s *service) SendMessage(ctx context.Context, req notification.SendMessageRequest) notification.SendResult {
	if err := req.Validate(); err != nil {
		return notification.SendResult{Success: false, Error: err.Error()}
	}
	return s.send(ctx, req)
}

func (s *service) send(ctx context.Context, req notification.SendMessageRequest) notification.SendResult {
	start := time.Now()
	err := s.sender.SendMessage(ctx, req.RecipientID, req.Text)
	s.metrics.NotificationSent(err == nil)

	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, notification.ErrMissingCredential) {
			level = slog.LevelError
		}
		slog.Log(ctx, level, "Notification delivery failed",
			"recipient_id", req.RecipientID,
			"error", err,
			"duration", time.Since(start),
		)
		return notification.SendResult{Success: false, Error: err.Error()}
	}

	slog.Info("Notification delivered", "recipient_id", req.RecipientID, "duration", time.Since(start))
	return notification.SendResult{Success: true}
}

// Queue hands req to the workers. It fails fast with ErrQueueFull instead of
// blocking the caller.
func (s *service) Queue(ctx context.Context, req notification.SendMessageRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	select {
	case <-s.stopCh:
		return notification.ErrQueueFull
	default:
	}

	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return notification.ErrQueueFull
	}
}

// Stop gracefully stops the notification service
func (s *service) Stop() {
	s.once.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}
