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

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-history/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Imports the streaming history into the SQLite snapshot",
	Long: `Loads and cleans the history files in data_dir and replaces the snapshot in the
database. Serve with --from_db to skip re-reading the JSON files.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := importHistory(viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importHistory(dbPath string) error {
	table, src, err := readHistory()
	if err != nil {
		return err
	}

	dbPath, err = homedir.Expand(dbPath)
	if err != nil {
		return fmt.Errorf("expanding database: %w", err)
	}
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.ReplacePlays(table, src); err != nil {
		return fmt.Errorf("importing plays: %w", err)
	}
	fmt.Printf("Imported %d plays into %s\n", table.Len(), dbPath)
	return nil
}
