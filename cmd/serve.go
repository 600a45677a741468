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
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-history/internal/dashboard"
)

var serveFromDb bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the interactive dashboard",
	Long: `Loads the streaming history (or the snapshot written by import, with --from_db)
and serves the dashboard on http://host:port until interrupted.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := serve(ctx, serveFromDb)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "127.0.0.1", "Address to listen on")
	viper.BindPFlag("host", serveCmd.Flags().Lookup("host"))

	serveCmd.Flags().IntP("port", "p", 8050, "Port to listen on")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	serveCmd.Flags().Float64("rate_limit", 20, "API requests per second, 0 to disable")
	viper.BindPFlag("rate_limit", serveCmd.Flags().Lookup("rate_limit"))

	serveCmd.Flags().BoolVar(&serveFromDb, "from_db", false, "Load plays from the SQLite snapshot instead of the JSON files")
}

func serve(ctx context.Context, fromDb bool) error {
	table, err := loadTable(fromDb)
	if err != nil {
		return err
	}

	server, err := dashboard.New(table, dashboard.Config{
		RateLimit: viper.GetFloat64("rate_limit"),
	})
	if err != nil {
		return fmt.Errorf("creating dashboard: %w", err)
	}

	addr := net.JoinHostPort(viper.GetString("host"), strconv.Itoa(viper.GetInt("port")))
	fmt.Printf("Dashboard running on http://%s\n", addr)
	return server.ListenAndServe(ctx, addr)
}
