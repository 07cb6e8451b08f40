package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aita/cms/db"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty database file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database := openDB()
		if _, err := os.Stat(database.Filename()); err == nil {
			return fmt.Errorf("database file %q already exists", database.Filename())
		}
		return database.Save()
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert [id] [name] [programme] [mark]",
	Short: "Insert a new record into the database",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		mark, err := strconv.ParseFloat(args[3], 32)
		if err != nil {
			return fmt.Errorf("invalid mark %q", args[3])
		}
		database, err := loadDB()
		if err != nil {
			return err
		}
		err = database.Insert(db.Student{ID: id, Name: args[1], Programme: args[2], Mark: float32(mark)})
		if err != nil {
			return err
		}
		return database.Save()
	},
}

var (
	sortField string
	sortOrder string
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Print the records of the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := loadDB()
		if err != nil {
			return err
		}
		records := database.Select()
		if sortField != "" {
			records, err = database.Sorted(db.SortField(sortField), sortOrder)
			if err != nil {
				return err
			}
		}
		out := cmd.OutOrStdout()
		for _, s := range records {
			fmt.Fprintln(out, db.EncodeLine(s))
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print mark statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := loadDB()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		sum, ok := database.Summary()
		if !ok {
			fmt.Fprintln(out, "No records available for summary.")
			return nil
		}
		fmt.Fprintf(out, "Total number of students: %d\n", sum.Count)
		fmt.Fprintf(out, "Average mark: %.2f\n", sum.Average)
		fmt.Fprintf(out, "Highest mark: %s (%s)\n", db.FormatMark(sum.Highest.Mark), sum.Highest.Name)
		fmt.Fprintf(out, "Lowest mark: %s (%s)\n", db.FormatMark(sum.Lowest.Mark), sum.Lowest.Name)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [xlsx file]",
	Short: "Export the database to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := loadDB()
		if err != nil {
			return err
		}
		return database.ExportXLSX(args[0])
	},
}

// loadDB opens the configured database, failing when the file is missing.
func loadDB() (*db.DB, error) {
	database := openDB()
	opened, err := database.Open()
	if err != nil {
		return nil, err
	}
	if !opened {
		return nil, fmt.Errorf("database file %q does not exist: %w", database.Filename(), os.ErrNotExist)
	}
	return database, nil
}

func init() {
	selectCmd.Flags().StringVar(&sortField, "sort", "", "sort by id or mark")
	selectCmd.Flags().StringVar(&sortOrder, "order", "asc", "sort order: asc or desc")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
}
