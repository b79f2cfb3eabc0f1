// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production).
//
// # Run Correlation
//
// Every push or recreate invocation gets a run identifier. The WithRun helper
// attaches it to the log entry, ensuring that all logs related to a specific
// run can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("run started")
//
//	// In a command:
//	l := logger.WithRun(log, runID)
//	l.Error("batch failed", zap.Error(err))
package logger
