/*
Package logger - GORM logger adapter tests
*/
package logger

import (
	"context"
	"testing"
	"time"

	"takeout/infrastructure/persistence"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func TestGormLoggerAdapter(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	testCases := []struct {
		name          string
		logLevel      logger.LogLevel
		expectedLevel zapcore.Level
		shouldTrace   bool
	}{
		{"Warn Level", logger.Warn, zapcore.WarnLevel, false},
		{"Info Level", logger.Info, zapcore.InfoLevel, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			log = zap.New(core)

			adapter := NewGormLoggerAdapter(tc.logLevel)

			if newAdapter := adapter.LogMode(logger.Info); newAdapter == nil {
				t.Fatal("LogMode should return a new adapter")
			}

			adapter.Info(context.Background(), "test info message")
			adapter.Warn(context.Background(), "test warn message")
			adapter.Error(context.Background(), "test error message")

			begin := time.Now()
			adapter.Trace(context.Background(), begin, func() (string, int64) {
				return "SELECT * FROM orders", 1
			}, nil)

			foundInfo := false
			foundWarn := false
			foundError := false
			foundTrace := false

			for _, logEntry := range logs.All() {
				switch logEntry.Message {
				case "test info message":
					foundInfo = true
				case "test warn message":
					foundWarn = true
				case "test error message":
					foundError = true
				case "SQL query executed":
					foundTrace = true
					hasSQL := false
					for _, field := range logEntry.Context {
						if field.Key == "sql" {
							hasSQL = true
							break
						}
					}
					if !hasSQL {
						t.Error("SQL query not found in trace log fields")
					}
				}
			}

			if tc.logLevel >= logger.Info {
				if !foundInfo {
					t.Error("Info message not found in logs")
				}
			} else if foundInfo {
				t.Error("Info message should not be logged at Warn level")
			}

			if tc.logLevel >= logger.Warn && !foundWarn {
				t.Error("Warn message not found in logs")
			}
			if tc.logLevel >= logger.Error && !foundError {
				t.Error("Error message not found in logs")
			}

			if tc.shouldTrace {
				if !foundTrace {
					t.Error("Trace message not found in logs for Info level")
				}
			} else if foundTrace {
				t.Error("Trace message should not be logged at Warn level")
			}
		})
	}
}

func TestGormLoggerAdapterWithConfig(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)

	customConfig := &GormLoggerConfig{
		SlowThreshold:             10 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	}

	adapter := NewGormLoggerAdapterWithConfig(logger.Info, customConfig)

	ctx := persistence.ContextWithRequestID(context.Background(), "test-request-123")

	begin := time.Now()
	adapter.Trace(ctx, begin, func() (string, int64) {
		time.Sleep(15 * time.Millisecond)
		return "SELECT * FROM orders WHERE status = 2", 1
	}, nil)

	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM orders WHERE id = 999", 0
	}, logger.ErrRecordNotFound)

	foundSlowQuery := false
	foundRequestID := false
	for _, logEntry := range logs.All() {
		if logEntry.Message == "Slow SQL query" {
			foundSlowQuery = true
			for _, field := range logEntry.Context {
				if field.Key == "request_id" && field.String == "test-request-123" {
					foundRequestID = true
					break
				}
			}
		}
		if logEntry.Message == "Database operation failed" {
			t.Error("Record not found error should be ignored with custom config")
		}
	}

	if !foundSlowQuery {
		t.Error("Slow query should be logged with warn level")
	}
	if !foundRequestID {
		t.Error("Request ID should be propagated from context")
	}
}
