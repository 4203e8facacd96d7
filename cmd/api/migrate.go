package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/app"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/config"
)

// migrateCommand подготавливает хранилище (миграции goose, индексы MongoDB, проверка бакета) и завершается
func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Prepares the document store and exits",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
			}

			ctx := context.Background()
			store, err := app.OpenStore(ctx, cfg)
			if err != nil {
				log.Fatalf("Не удалось подключиться к хранилищу: %v", err)
			}
			defer func() {
				if err := store.Close(ctx); err != nil {
					slog.Warn("Failed to close store", "error", err)
				}
			}()

			if err := store.Migrate(ctx); err != nil {
				return err
			}

			slog.Info("Store is up to date")
			return nil
		},
	}
}
