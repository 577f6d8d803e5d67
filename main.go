package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/brickledger/backend/internal/controllers/v1"
	"github.com/brickledger/backend/internal/models"
	"github.com/brickledger/backend/internal/platform"
	"github.com/brickledger/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create data directory
	dataDir := filepath.Join(".", "data")
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create data directory")
	}

	// Connect to the database and migrate all models so that the
	// schema is correct
	db, err := models.Connect(filepath.Join(dataDir, "gorm.db?_pragma=foreign_keys(1)"))
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to the database")
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("could not migrate the database")
	}

	// The upstream platform sync is optional. Without a configured URL,
	// sync requests report their outcome as failed instead of erroring.
	var sync platform.Client
	if platformURL, ok := os.LookupEnv("PLATFORM_URL"); ok {
		sync = platform.NewHTTPClient(platformURL, os.Getenv("PLATFORM_TOKEN"))
	}

	r, teardown, err := router.Config()
	defer teardown()
	if err != nil {
		log.Fatal().Err(err).Msg("could not set up the router")
	}

	router.AttachRoutes(v1.Controller{DB: db, Sync: sync}, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
