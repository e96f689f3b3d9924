package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/usecase/expire_requests"
)

// Expirer выполняет один проход очистки просроченных заявок
type Expirer interface {
	Execute(ctx context.Context) (*expire_requests.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически переводит заявки без решения в expired
type Sweeper struct {
	expirer  Expirer
	interval time.Duration
	logger   Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewSweeper создает фоновую задачу; interval <= 0 отключает ее
func NewSweeper(expirer Expirer, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		expirer:  expirer,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start запускает цикл очистки и блокируется до остановки
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running || s.interval <= 0 {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()
	defer close(s.doneCh)

	s.logger.Info("Sweeper: started, interval=%s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Первый проход сразу: после рестарта могли накопиться просроченные заявки
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped by context")
			return
		case <-s.stopCh:
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop останавливает цикл и ждет завершения текущего прохода
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	<-s.doneCh
}

func (s *Sweeper) sweep(ctx context.Context) {
	resp, err := s.expirer.Execute(ctx)
	if err != nil {
		s.logger.Error("Sweeper: pass failed: %v", err)
		return
	}
	if resp.Expired > 0 || resp.Failed > 0 {
		s.logger.Info("Sweeper: expired=%d, failed=%d", resp.Expired, resp.Failed)
	}
}
