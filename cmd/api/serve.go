package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/app"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/config"
)

// serveCommand запускает HTTP сервер (команда по умолчанию)
func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Загружаем конфигурацию из переменных окружения
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
			}

			// Создаем экземпляр приложения
			application, err := app.New(cfg)
			if err != nil {
				log.Fatalf("Не удалось создать приложение: %v", err)
			}

			// Инициализируем приложение (подключение к хранилищу, настройка роутинга)
			ctx := context.Background()
			if err := application.Initialize(ctx); err != nil {
				log.Fatalf("Не удалось инициализировать приложение: %v", err)
			}

			g, gCtx := errgroup.WithContext(ctx)

			// Запускаем HTTP сервер
			g.Go(func() error {
				if err := application.Run(); err != nil {
					return fmt.Errorf("HTTP server error: %w", err)
				}
				return nil
			})

			// Ожидаем сигнал прерывания (Ctrl+C или SIGTERM) и останавливаем приложение
			g.Go(func() error {
				quit := make(chan os.Signal, 1)
				signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
				defer signal.Stop(quit)

				select {
				case sig := <-quit:
					slog.Info("Received shutdown signal", "signal", sig.String())
				case <-gCtx.Done():
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()

				return application.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}
}
