package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fitclub/cmd/client/cmd/types"
)

var force bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Сохранить настройки клиента",
	Long: `Команда init выполняет первоначальную настройку клиента:
	1. Проверяет соединение с сервером клуба
	2. Сохраняет адрес сервера в ~/.fitclub/config.yaml

Флаг --server задает адрес сервера. Существующий файл перезаписывается
только с флагом --force.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := types.From(cmd.Context())
		if err != nil {
			return err
		}
		cfg := rt.App.Config()

		path := filepath.Join(cfg.ConfigDir, "config.yaml")
		if _, err := os.Stat(path); err == nil && !force {
			fmt.Printf("Конфигурация уже существует: %s\n", path)
			return nil
		}

		fmt.Println("Проверка соединения с сервером...")
		if err := rt.App.CheckConnection(cmd.Context()); err != nil {
			fmt.Printf("⚠️  Предупреждение: не удалось подключиться к серверу: %v\n", err)
		} else {
			fmt.Println("✓ Соединение с сервером установлено")
		}

		if err := os.MkdirAll(cfg.ConfigDir, 0o700); err != nil {
			return fmt.Errorf("ошибка создания директории: %w", err)
		}

		v := viper.New()
		v.Set("app_env", cfg.Env)
		v.Set("server_url", cfg.ServerURL)
		v.Set("log_level", cfg.LogLevel)
		v.Set("request_timeout_seconds", int(cfg.RequestTimeout.Seconds()))
		if err := v.WriteConfigAs(path); err != nil {
			return fmt.Errorf("ошибка записи конфигурации: %w", err)
		}

		fmt.Printf("✅ Настройки сохранены в %s\n", path)
		fmt.Println()
		fmt.Println("Что дальше:")
		fmt.Println("1. Список клиентов: fitclub clients list")
		fmt.Println("2. Новый клиент: fitclub clients create --set fio=\"Иванов Иван\"")
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Проверить соединение с сервером",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := types.From(cmd.Context())
		if err != nil {
			return err
		}
		if err := rt.App.CheckConnection(cmd.Context()); err != nil {
			return err
		}
		rt.Term.Success("Сервер доступен: " + rt.App.Config().ServerURL)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "перезаписать существующую конфигурацию")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(pingCmd)
}
