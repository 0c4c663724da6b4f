package assist

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ConversationLogConfig controls NDJSON conversation logging.
type ConversationLogConfig struct {
	Enabled       bool
	Dir           string
	GlobalEnabled bool
	GlobalPath    string
	QueueSize     int
}

// ConversationLogEvent is one logged conversation turn.
type ConversationLogEvent struct {
	Timestamp string `json:"ts"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Direction string `json:"direction"` // "inbound" (user) or "outbound" (assistant)
	State     string `json:"state"`
	Text      string `json:"text"`
}

// ConversationLogger writes conversation events to per-session NDJSON files
// (dir/userID/sessionID.ndjson) and optionally to one global file. Writes
// happen on a background goroutine fed by a bounded queue; when the queue is
// full, events are dropped rather than blocking the conversation.
type ConversationLogger struct {
	cfg    ConversationLogConfig
	logger *slog.Logger
	queue  chan ConversationLogEvent
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewConversationLogger creates a logger. When cfg.Enabled and
// cfg.GlobalEnabled are both false the returned logger is inert.
func NewConversationLogger(cfg ConversationLogConfig, logger *slog.Logger) (*ConversationLogger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	l := &ConversationLogger{
		cfg:    cfg,
		logger: logger,
		queue:  make(chan ConversationLogEvent, cfg.QueueSize),
		done:   make(chan struct{}),
	}

	if cfg.Enabled {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create conversation log dir: %w", err)
		}
	}
	if cfg.GlobalEnabled {
		if err := os.MkdirAll(filepath.Dir(cfg.GlobalPath), 0o755); err != nil {
			return nil, fmt.Errorf("create global conversation log dir: %w", err)
		}
	}

	l.wg.Add(1)
	go l.run()
	return l, nil
}

// Log enqueues an event. Never blocks; drops when the queue is full.
func (l *ConversationLogger) Log(event ConversationLogEvent) {
	if !l.cfg.Enabled && !l.cfg.GlobalEnabled {
		return
	}
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	select {
	case l.queue <- event:
	default:
		l.logger.Warn("conversation log queue full, dropping event",
			"user_id", event.UserID, "session_id", event.SessionID)
	}
}

// Close drains the queue and stops the writer goroutine.
func (l *ConversationLogger) Close() error {
	close(l.done)
	l.wg.Wait()
	return nil
}

func (l *ConversationLogger) run() {
	defer l.wg.Done()
	for {
		select {
		case event := <-l.queue:
			l.write(event)
		case <-l.done:
			for {
				select {
				case event := <-l.queue:
					l.write(event)
				default:
					return
				}
			}
		}
	}
}

func (l *ConversationLogger) write(event ConversationLogEvent) {
	line, err := json.Marshal(event)
	if err != nil {
		l.logger.Warn("failed to marshal conversation event", "error", err)
		return
	}
	line = append(line, '\n')

	if l.cfg.Enabled {
		dir := filepath.Join(l.cfg.Dir, event.UserID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			l.logger.Warn("failed to create session log dir", "error", err)
		} else {
			path := filepath.Join(dir, event.SessionID+".ndjson")
			l.appendFile(path, line)
		}
	}
	if l.cfg.GlobalEnabled {
		l.appendFile(l.cfg.GlobalPath, line)
	}
}

func (l *ConversationLogger) appendFile(path string, line []byte) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.logger.Warn("failed to open conversation log file", "path", path, "error", err)
		return
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.logger.Warn("failed to close conversation log file", "path", path, "error", closeErr)
		}
	}()
	if _, err := f.Write(line); err != nil {
		l.logger.Warn("failed to write conversation log line", "path", path, "error", err)
	}
}
