package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// fileWriter writes audit events to a file with rotation
type fileWriter struct {
	logger  *lumberjack.Logger
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewFileWriter creates a file writer with log rotation
func NewFileWriter(filename string, maxSizeMB, maxAgeDays, maxBackups int) (Writer, error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	logger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSizeMB,
		MaxAge:     maxAgeDays,
		MaxBackups: maxBackups,
		LocalTime:  true,
		Compress:   true,
	}

	w := &fileWriter{
		logger:  logger,
		encoder: json.NewEncoder(logger),
	}

	if err := w.Write(Event{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		EventType: EventSystemStartup,
	}); err != nil {
		return nil, fmt.Errorf("write startup event: %w", err)
	}

	return w, nil
}

// Write appends one event
func (w *fileWriter) Write(event Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.encoder.Encode(event)
}

// Close writes a shutdown marker and closes the file
func (w *fileWriter) Close() error {
	_ = w.Write(Event{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		EventType: EventSystemStop,
	})
	return w.logger.Close()
}

// nopWriter discards events; used when auditing is disabled
type nopWriter struct{}

// NewNopWriter returns a writer that discards all events
func NewNopWriter() Writer { return nopWriter{} }

func (nopWriter) Write(Event) error { return nil }
func (nopWriter) Close() error      { return nil }
