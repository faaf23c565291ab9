package main

import (
	"Recipe-Share-Backend/cmd/config"
	migration "Recipe-Share-Backend/cmd/database/migrate"
	"Recipe-Share-Backend/cmd/database/transfer"
	"Recipe-Share-Backend/internal/logging"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/mailing"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/database"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "run the schema migration and exit")
	transferFrom := flag.String("transfer-from", "", "copy the given SQLite database into the configured database and exit")
	flag.Parse()

	utils.LoadConfig()
	logging.Init(logging.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
		Output: os.Stdout,
	})

	db, err := config.ConnectDB()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := migration.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}
	if *migrateOnly {
		return
	}

	if *transferFrom != "" {
		src, err := database.OpenSQLite(*transferFrom)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to open transfer source")
		}
		if _, err := transfer.Transfer(context.Background(), src, db); err != nil {
			logging.Fatal().Err(err).Msg("transfer failed")
		}
		logging.Info().Str("source", *transferFrom).Msg("transfer complete")
		return
	}

	opts := config.OptionsFromConfig()
	opts.Mailer = mailing.NewMailer(opts.MailConfig)
	if opts.Storage, err = storage.New(); err != nil {
		logging.Fatal().Err(err).Msg("failed to set up image storage")
	}
	if path := utils.GetConfig("ACCESS_LOG_FILE"); path != "" {
		file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			logging.Fatal().Err(err).Msg("error opening access log")
		}
		defer file.Close()
		opts.AccessLog = file
	}

	app, err := config.NewApp(db, opts)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create app")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logging.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	port := utils.GetConfig("APP_PORT")
	logging.Info().Str("port", port).Msg("server starting")
	if err := app.Listen(":" + port); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}
