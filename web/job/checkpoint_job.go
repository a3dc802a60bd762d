// Package job contains the cron jobs scheduled by the web server.
package job

import (
	"destek-ui/database"
	"destek-ui/logger"
)

// CheckpointDbJob periodically flushes the SQLite WAL into the main
// database file so the panel survives abrupt shutdowns with minimal loss.
type CheckpointDbJob struct{}

func NewCheckpointDbJob() *CheckpointDbJob {
	return new(CheckpointDbJob)
}

// Run is the cron job entry point.
func (j *CheckpointDbJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint job err:", err)
	}
}
