package workers

import (
	"context"
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/logger"

	"gorm.io/gorm"
)

// SessionPurger - часть RefreshTokenRepository, нужная воркеру
type SessionPurger interface {
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

// SessionWorker периодически удаляет истекшие refresh-сессии.
// При входе чистятся только сессии этого пользователя, остальные копятся до прохода воркера.
type SessionWorker struct {
	db       *gorm.DB
	sessions SessionPurger
	interval time.Duration
	now      func() time.Time
}

func NewSessionWorker(db *gorm.DB, sessions SessionPurger, interval time.Duration) *SessionWorker {
	return &SessionWorker{
		db:       db,
		sessions: sessions,
		interval: interval,
		now:      time.Now,
	}
}

// Start запускает фоновую очистку. interval <= 0 выключает воркер.
// Возвращает канал, который закрывается после остановки горутины.
func (w *SessionWorker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if w.interval <= 0 {
		logger.Info("Session worker disabled")
		close(done)
		return done
	}

	go func() {
		defer close(done)
		w.run(ctx)
	}()
	return done
}

func (w *SessionWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep - один проход очистки
func (w *SessionWorker) Sweep(ctx context.Context) int64 {
	db := w.db
	if db != nil {
		db = db.WithContext(ctx)
	}
	removed, err := w.sessions.DeleteExpired(db, w.now().UTC())
	if err != nil {
		logger.Error("Error deleting expired sessions", "error", err)
		return 0
	}
	if removed > 0 {
		logger.Info("Deleted expired sessions", "count", removed)
	}
	return removed
}
