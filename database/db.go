package database

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/todoapp/todo-api/config"
	"github.com/todoapp/todo-api/database/model"
	"github.com/todoapp/todo-api/util/common"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels() error {
	models := []any{
		&model.User{},
		&model.Category{},
		&model.Todo{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// InitDB opens (creating if needed) the SQLite file at dbPath and migrates
// the schema.
func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	if err := checkDBFile(dbPath); err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	dsn := dbPath + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA cache_size = -64000;")
	if err != nil {
		return err
	}
	_, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;")
	if err != nil {
		return err
	}

	return initModels()
}

// checkDBFile refuses to open an existing, non-empty file that is not a
// SQLite database.
func checkDBFile(dbPath string) error {
	f, err := os.Open(dbPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}

	ok, err := IsSQLiteDB(f)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if !ok {
		return common.NewErrorf("%s is not a SQLite database", dbPath)
	}
	return nil
}

// CloseDB checkpoints the WAL and closes the pool. Both errors are reported.
func CloseDB() error {
	if db == nil {
		return nil
	}

	checkpointErr := Checkpoint()
	if checkpointErr != nil {
		log.Printf("error executing checkpoint: %v", checkpointErr)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return common.Combine(checkpointErr, err)
	}
	closeErr := sqlDB.Close()
	db = nil
	return common.Combine(checkpointErr, closeErr)
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsSQLiteDB(file io.ReaderAt) (bool, error) {
	signature := []byte("SQLite format 3\x00")
	buf := make([]byte, len(signature))
	_, err := file.ReadAt(buf, 0)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, signature), nil
}

// Checkpoint folds the WAL back into the main database file.
func Checkpoint() error {
	if db == nil {
		return common.NewError("database not initialized")
	}
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
