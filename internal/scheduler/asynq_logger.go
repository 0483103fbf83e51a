package scheduler

import (
	"fmt"
	"log/slog"
	"os"

	"leasing_crm_backend/platform/logger"
)

// asynqLogger routes asynq's internal logging through the application logger.
type asynqLogger struct {
	log *slog.Logger
}

func newAsynqLogger(log *logger.Logger) *asynqLogger {
	return &asynqLogger{log: log.With("component", "asynq")}
}

func (l *asynqLogger) Debug(args ...any) { l.log.Debug(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.log.Info(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.log.Warn(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.log.Error(fmt.Sprint(args...)) }

func (l *asynqLogger) Fatal(args ...any) {
	l.log.Error(fmt.Sprint(args...))
	os.Exit(1)
}
