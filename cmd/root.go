/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-history/internal/history"
	"github.com/ademuri/streaming-history/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "streaming-history",
	Short: "Explores Spotify extended streaming history",
	Long: `Loads the Streaming_History_Audio_*.json files of a Spotify extended streaming
history export and serves an interactive dashboard of listening time per month,
top artists, and listening by weekday and hour.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.streaming-history.yaml)")

	rootCmd.PersistentFlags().String("data_dir", history.DefaultDir, "Directory containing the streaming history export")
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data_dir"))

	rootCmd.PersistentFlags().String("pattern", history.DefaultPattern, "Glob pattern of history files within data_dir")
	viper.BindPFlag("pattern", rootCmd.PersistentFlags().Lookup("pattern"))

	rootCmd.PersistentFlags().StringP("database", "d", "./streaming-history.db", "Path to the SQLite snapshot")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().String("timezone", "UTC", "Time zone used for months, weekdays and hours (e.g. Europe/Madrid)")
	viper.BindPFlag("timezone", rootCmd.PersistentFlags().Lookup("timezone"))

	rootCmd.PersistentFlags().String("log_level", "info", "Log level: debug, info, warn, error")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))

	rootCmd.PersistentFlags().String("log_format", "console", "Log format: console or json")
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log_format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".streaming-history" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".streaming-history")
	}

	viper.SetEnvPrefix("STREAMING_HISTORY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.PersistentFlags().Set(f.Name, viper.GetString(f.Name))
		}
	})

	logging.Init(logging.Config{
		Level:  viper.GetString("log_level"),
		Format: viper.GetString("log_format"),
	})
}
