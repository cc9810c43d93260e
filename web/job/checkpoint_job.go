// Package job holds the background jobs run by the web server's cron
// scheduler.
package job

import (
	"github.com/todoapp/todo-api/database"
	"github.com/todoapp/todo-api/logger"
	"github.com/todoapp/todo-api/util/common"
)

// CheckpointJob folds the SQLite write-ahead log back into the database file
// so the WAL does not grow without bound between restarts.
type CheckpointJob struct {
	checkpoint func() error
}

func NewCheckpointJob() *CheckpointJob {
	return &CheckpointJob{checkpoint: database.Checkpoint}
}

func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")
	if err := j.checkpoint(); err != nil {
		logger.Warning("wal checkpoint job err:", err)
		return
	}
	logger.Debug("wal checkpoint done")
}
