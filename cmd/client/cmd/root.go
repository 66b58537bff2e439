package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"fitclub/cmd/client/cmd/entity"
	"fitclub/cmd/client/cmd/types"
	"fitclub/internal/app/client"
	"fitclub/internal/app/client/config"
	"fitclub/internal/app/client/terminal"
	"fitclub/internal/utils/logger"
)

var (
	cfgFile    string
	cfg        *config.Config
	log        *slog.Logger
	app        *client.App
	debug      bool
	jsonOutput bool
	assumeYes  bool
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "fitclub",
	Short: "FitClub - консольная панель администратора фитнес-клуба",
	Long: `FitClub работает с тем же сервером, что и веб-панель администратора:
создает, редактирует и удаляет клиентов, тренеров, зоны, оборудование,
тарифы, абонементы и тренировки.

После каждого изменения список перезагружается с сервера.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Ошибку действия уже показали пользователю
		var reported *client.ReportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Флаги командной строки важнее файла и окружения
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if assumeYes {
		cfg.AssumeYes = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log = logger.WithLevel(cfg.Env, level)

	term := terminal.Stdio(terminal.WithAssumeYes(cfg.AssumeYes), terminal.WithJSON(jsonOutput))
	app, err = client.New(cfg, log, term)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(types.WithRuntime(cmd.Context(), &types.Runtime{App: app, Term: term}))
	return nil
}

func loadConfig() (*config.Config, error) {
	v := viper.GetViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		v.AddConfigPath(filepath.Join(home, ".fitclub"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return config.Load(v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод списков в формате JSON")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "отвечать \"да\" на все подтверждения")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL сервера клуба")

	for _, c := range entity.Commands() {
		rootCmd.AddCommand(c)
	}
}
