package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/projbank/projbank/internal/display"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "projbank",
	Short: "Turn CRI project-bank catalogs into a normalized dataset",
	Long: `Projbank reads the PDF investment sheets published by Moroccan regional
investment centers (CRI), extracts each project's fields, and maintains a
normalized CSV collection across sources and runs.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		display.ErrorMsg(err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.projbank/config.yaml)")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(exportCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			display.Warn(fmt.Sprintf("could not determine home directory: %v", err))
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".projbank"))
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, flags and env vars can carry a run
	}
}
