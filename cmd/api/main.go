package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hafizmfadli/go-vidly/internal/data"
	"github.com/hafizmfadli/go-vidly/internal/jsonlog"
	"github.com/hafizmfadli/go-vidly/internal/validator"
	_ "github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application version number
const version = "1.0.0"

// config struct holds all the configuration settings for the application.
type config struct {

	// the network port that we want the server to listen on
	port int

	// current operating environment for the application (dev, staging, prod, etc..)
	env string

	// storage struct field holds the settings for the catalog's storage
	// backend. The catalog is stored as whole serialized collections in
	// a key-value table, so any of the backends can carry it: postgres
	// for server installs, sqlite for a single local profile, memory
	// for throwaway runs.
	storage struct {
		backend    string
		sqlitePath string
	}

	// db struct field holds the configuration settings for the
	// PostgreSQL connection pool (used when the backend is "postgres").
	db struct {
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
	}

	// limiter struct containing fields for the requests per second and
	// burst values, and a boolean field to enable/disable rate limiting
	// altogether
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
}

// application struct holds the dependencies for our HTTP handlers, helpers, and middleware.
type application struct {
	config config
	logger *jsonlog.Logger
	models data.Models
}

func main() {

	var cfg config

	flag.IntVar(&cfg.port, "port", 4000, "API server port")
	flag.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&cfg.storage.backend, "storage", "sqlite", "Storage backend (postgres|sqlite|memory)")
	flag.StringVar(&cfg.storage.sqlitePath, "sqlite-path", "vidly.db", "SQLite database file")
	flag.StringVar(&cfg.db.dsn, "db-dsn", os.Getenv("VIDLY_DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	flag.StringVar(&cfg.db.maxIdleTime, "db-max-idle-time", "15m", "PostgreSQL max connection idle time")
	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")

	flag.Parse()

	// Initialize a new jsonlog.Logger which writes any messages *at or above* the INFO
	// severity level to the standard out stream
	logger := jsonlog.NewLogger(os.Stdout, jsonlog.LevelInfo)

	if !validator.In(cfg.storage.backend, "postgres", "sqlite", "memory") {
		logger.PrintFatal(fmt.Errorf("unsupported storage backend %q", cfg.storage.backend), nil)
	}

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer closeStore()

	logger.PrintInfo("storage gateway ready", map[string]string{
		"backend": cfg.storage.backend,
	})

	app := &application{
		config: cfg,
		logger: logger,
		models: data.NewModels(store),
	}

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// openStore opens the configured storage backend and returns the
// gateway together with a function that releases it on shutdown.
func openStore(cfg config, logger *jsonlog.Logger) (data.Store, func(), error) {
	switch cfg.storage.backend {
	case "postgres":
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := data.NewPostgresStore(db, logger)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil

	case "sqlite":
		// gorm has its own logger; keep it quiet so all output stays on
		// the one jsonlog stream.
		db, err := gorm.Open(sqlite.Open(cfg.storage.sqlitePath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, nil, err
		}
		store, err := data.NewSQLiteStore(db, logger)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return store, closeStore, nil

	case "memory":
		return data.NewMemoryStore(logger), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.storage.backend)
	}
}

// openDB returns a sql.DB connection pool
func openDB(cfg config) (*sql.DB, error) {
	// create an empty connection pool
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	// Set the maximum number of open (in-use + idle) connections in the pool.
	// Note that passing a value less than or equal to 0 will mean there is no limit.
	db.SetMaxOpenConns(cfg.db.maxOpenConns)

	// Set the maximum number of idle connections in the pool. Again, passing a value
	// less than or equal to 0 will mean there is no limit.
	db.SetMaxIdleConns(cfg.db.maxIdleConns)

	duration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		return nil, err
	}

	// Set the maximum idle timeout
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// establish a new connection to the database. If the connection couldn't be
	// established successfully within the 5 second deadline, then this will return an error
	err = db.PingContext(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}
