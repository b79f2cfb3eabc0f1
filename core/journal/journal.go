package journal

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run is one row of reconciliation history.
type Run struct {
	ID      uint   `gorm:"primaryKey"`
	RunID   string `gorm:"size:36;index"`
	Command string `gorm:"size:32"`
	// Source is the staging directory or bucket the records came from.
	Source        string `gorm:"size:255"`
	Total         int
	Created       int
	Updated       int
	Skipped       int
	FailedCreates int
	FailedUpdates int
	FailedBatches int
	QueryFailed   bool
	Aborted       bool
	StartedAt     time.Time
	FinishedAt    time.Time
}

// TableName overrides the default gorm pluralization.
func (Run) TableName() string {
	return "reconciliation_runs"
}

// NewRun starts a run row with a fresh identifier and start timestamp.
func NewRun(command, source string) *Run {
	return &Run{
		RunID:     uuid.NewString(),
		Command:   command,
		Source:    source,
		StartedAt: time.Now(),
	}
}

// Connect establishes a connection to the MySQL journal database.
// The journal is optional, so callers should handle the error gracefully.
func Connect(cfg Config) (*gorm.DB, error) {
	// Special characters in the password must be URL encoded for the DSN.
	userInfo := url.UserPassword(cfg.User, cfg.Password).String()

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)

	// Suppress GORM logging; the application logger reports journal failures.
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}

	return db, nil
}

// Recorder writes run rows.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder creates a recorder on an established connection.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record stamps the finish time and inserts the run row.
func (r *Recorder) Record(ctx context.Context, run *Run) error {
	run.FinishedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}
