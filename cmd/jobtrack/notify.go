package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"jobtrack/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notifier utilities",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification through the configured channel",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath, logger)
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	n := setupNotifier(cfg, &http.Client{Timeout: cfg.FetchTimeout}, logger)
	if err := notifier.SendTestMessage(n); err != nil {
		logger.Error("test notification did not go through", "error", err)
		os.Exit(1)
	}

	logger.Info("test notification delivered")
	return nil
}
