// Package audit records the outcome of every user-triggered action.
package audit

import (
	"context"
	"os/user"
	"time"

	"go.uber.org/zap"
)

// Status is the outcome of an action
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// Entry describes one action run
type Entry struct {
	Timestamp    time.Time
	RunID        string
	Action       string
	Status       Status
	Error        string
	Source       string
	PartnerID    string
	AdvertiserID string
	User         string
}

// Recorder receives one entry per action, whether it succeeded or failed
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// NewEntry creates an entry for action with status derived from err
func NewEntry(action, runID string, err error) Entry {
	entry := Entry{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		Action:    action,
		Status:    StatusSuccess,
		User:      currentUser(),
	}
	if err != nil {
		entry.Status = StatusError
		entry.Error = err.Error()
	}
	return entry
}

// LogRecorder writes entries to a zap logger
type LogRecorder struct {
	logger *zap.Logger
}

// NewLogRecorder creates a recorder that logs under the "audit" name
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	return &LogRecorder{logger: logger.Named("audit")}
}

// Record implements Recorder
func (r *LogRecorder) Record(ctx context.Context, entry Entry) error {
	fields := []zap.Field{
		zap.Time("timestamp", entry.Timestamp),
		zap.String("run_id", entry.RunID),
		zap.String("action", entry.Action),
		zap.String("status", string(entry.Status)),
		zap.String("source", entry.Source),
		zap.String("partner_id", entry.PartnerID),
		zap.String("advertiser_id", entry.AdvertiserID),
		zap.String("user", entry.User),
	}

	// Warn keeps failed actions free of stack traces
	if entry.Status == StatusError {
		r.logger.Warn("Action failed", append(fields, zap.String("error", entry.Error))...)
		return nil
	}

	r.logger.Info("Action completed", fields...)
	return nil
}

func currentUser() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}
