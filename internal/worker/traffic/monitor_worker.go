package traffic

import (
	"context"
	"errors"
	"time"

	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/usecase"
	"github.com/traffic-route-matcher/internal/worker"
	"go.uber.org/zap"
)

// DefaultInterval - период опроса фида по умолчанию
const DefaultInterval = 5 * time.Minute

// CycleRunner выполняет один цикл мониторинга
type CycleRunner interface {
	RunCycle(ctx context.Context) (*domain.CycleReport, error)
}

// MonitorWorker запускает цикл мониторинга сразу после старта и далее по таймеру.
// Следующий цикл начинается не раньше, чем закончится предыдущий.
type MonitorWorker struct {
	*worker.BaseWorker
	runner   CycleRunner
	interval time.Duration
	runOnce  bool
}

// NewMonitorWorker создает новый MonitorWorker; runOnce выполняет один цикл и завершает работу
func NewMonitorWorker(runner CycleRunner, interval time.Duration, runOnce bool, logger *zap.Logger) *MonitorWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &MonitorWorker{
		BaseWorker: worker.NewBaseWorker("traffic-monitor", logger),
		runner:     runner,
		interval:   interval,
		runOnce:    runOnce,
	}
}

// Start запускает воркер
func (w *MonitorWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting MonitorWorker",
		zap.Duration("interval", w.interval),
		zap.Bool("run_once", w.runOnce))

	w.runCycle(ctx)
	if w.runOnce {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *MonitorWorker) runCycle(ctx context.Context) {
	logger := w.Logger()

	report, err := w.runner.RunCycle(ctx)
	switch {
	case errors.Is(err, usecase.ErrCycleInProgress):
		logger.Warn("Previous cycle still running, skipping tick")
	case err != nil:
		fields := []zap.Field{zap.Error(err)}
		if report != nil {
			fields = append(fields, zap.String("cycle_id", report.CycleID.String()))
		}
		logger.Error("Traffic monitoring cycle failed", fields...)
	default:
		logger.Info("Traffic monitoring cycle finished",
			zap.String("cycle_id", report.CycleID.String()),
			zap.Duration("duration", report.Duration),
			zap.Int("matched", report.EventsMatched))
	}
}
