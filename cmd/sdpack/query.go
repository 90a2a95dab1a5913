package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tes4tools/sdpack/internal/catalog"
)

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Query the shader package catalog directly from command line",
	Long: `Query executes SQL against the catalog built by the index command,
lists the available tables, or shows a table's schema.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		listTables, err := cmd.Flags().GetBool("tables")
		if err != nil {
			return fmt.Errorf("failed to get tables flag: %w", err)
		}
		schemaTable, err := cmd.Flags().GetString("schema")
		if err != nil {
			return fmt.Errorf("failed to get schema flag: %w", err)
		}

		slog.Debug("Query parameters",
			"database", cfg.Database,
			"list-tables", listTables,
			"schema", schemaTable)

		cat, err := catalog.Open(catalog.DefaultOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		defer cat.Close()

		// Handle --tables flag
		if listTables {
			query := `
				SELECT name FROM sqlite_master
				WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
				ORDER BY name
			`

			rows, err := cat.Query(ctx, query)
			if err != nil {
				return fmt.Errorf("listing tables: %w", err)
			}
			defer rows.Close()

			fmt.Println("Available tables:")
			for rows.Next() {
				var tableName string
				if err := rows.Scan(&tableName); err != nil {
					return fmt.Errorf("scanning table name: %w", err)
				}
				fmt.Printf("  %s\n", tableName)
			}

			return rows.Err()
		}

		// Handle --schema flag
		if schemaTable != "" {
			rows, err := cat.Query(ctx, `PRAGMA table_info(`+quoteIdentifier(schemaTable)+`)`)
			if err != nil {
				return fmt.Errorf("getting schema for table %s: %w", schemaTable, err)
			}
			defer rows.Close()

			fmt.Printf("Schema for table '%s':\n", schemaTable)
			fmt.Printf("%-15s %-10s %-8s %-10s %-8s\n",
				"Column", "Type", "NotNull", "Default", "Primary")
			fmt.Println(strings.Repeat("-", 56))

			for rows.Next() {
				var cid int
				var name, dataType string
				var notNull int
				var defaultValue, primaryKey any

				if err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &primaryKey); err != nil {
					return fmt.Errorf("scanning schema row: %w", err)
				}

				defaultStr := "NULL"
				if defaultValue != nil {
					defaultStr = fmt.Sprintf("%v", defaultValue)
				}

				primaryStr := "NO"
				if primaryKey != nil && fmt.Sprintf("%v", primaryKey) != "0" {
					primaryStr = "YES"
				}

				fmt.Printf("%-15s %-10s %-8s %-10s %-8s\n",
					name, dataType,
					map[int]string{0: "NO", 1: "YES"}[notNull],
					defaultStr, primaryStr)
			}

			return rows.Err()
		}

		if len(args) == 0 {
			return fmt.Errorf("provide a SQL statement, or use --tables / --schema")
		}

		rows, err := cat.Query(ctx, args[0])
		if err != nil {
			return fmt.Errorf("executing query: %w", err)
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("reading result columns: %w", err)
		}
		fmt.Println(strings.Join(cols, " | "))
		fmt.Println(strings.Repeat("-", len(strings.Join(cols, " | "))))

		values := make([]any, len(cols))
		scan := make([]any, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}

		count := 0
		for rows.Next() {
			if err := rows.Scan(scan...); err != nil {
				return fmt.Errorf("scanning result row: %w", err)
			}

			fields := make([]string, len(cols))
			for i, v := range values {
				switch v := v.(type) {
				case nil:
					fields[i] = "NULL"
				case []byte:
					fields[i] = string(v)
				default:
					fields[i] = fmt.Sprintf("%v", v)
				}
			}
			fmt.Println(strings.Join(fields, " | "))
			count++
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating result rows: %w", err)
		}

		fmt.Printf("\n%d rows\n", count)
		return nil
	},
}

// quoteIdentifier wraps a table name for use where SQLite placeholders are
// not allowed, such as PRAGMA arguments.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Bool("tables", false, "list available tables")
	queryCmd.Flags().String("schema", "", "show schema for a table")
}
