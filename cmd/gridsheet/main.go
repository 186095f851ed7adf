// Package main provides the gridsheet CLI: it runs a command script against
// a sheet and writes the result as xlsx.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/javajack/gridsheet"
)

var (
	rows       int
	cols       int
	inputPath  string
	sheetName  string
	outputPath string
	describe   bool
	verbose    bool
	history    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridsheet [script]",
		Short: "Apply a command script to a sheet",
		Long: `gridsheet runs setFormat, setValue, clear and mergeCells commands
(plus undo/redo) from a script file, or stdin when none is given, and
writes the resulting sheet as xlsx.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run,
	}

	rootCmd.Flags().IntVar(&rows, "rows", 10, "Number of rows of a new sheet")
	rootCmd.Flags().IntVar(&cols, "cols", 10, "Number of columns of a new sheet")
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Start from this xlsx file instead of an empty sheet")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name to read and write")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output xlsx path")
	rootCmd.Flags().BoolVar(&describe, "describe", false, "Print the resulting sheet")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log commands to stderr")
	rootCmd.Flags().IntVar(&history, "history", gridsheet.DefaultHistoryLimit, "Undo depth")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var opts []gridsheet.Option
	if verbose {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, gridsheet.WithLogger(logger))
	}

	sheet, err := openSheet(opts)
	if err != nil {
		return err
	}

	script, err := readScript(cmd, args)
	if err != nil {
		return err
	}
	steps, err := gridsheet.ParseScript(bytes.NewReader(script), nil)
	if err != nil {
		return err
	}
	h := gridsheet.NewHistory(sheet, gridsheet.WithHistoryLimit(history))
	if err := gridsheet.RunScript(h, steps); err != nil {
		return err
	}

	if describe {
		fmt.Fprint(cmd.OutOrStdout(), sheet.Describe())
	}
	if outputPath == "" {
		return nil
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := sheet.WriteXLSX(out, sheetName); err != nil {
		out.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	return out.Close()
}

func openSheet(opts []gridsheet.Option) (*gridsheet.Sheet, error) {
	if inputPath == "" {
		return gridsheet.NewSheet(rows, cols, opts...), nil
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", inputPath)
	}
	defer f.Close()
	return gridsheet.ReadXLSX(f, sheetName, opts...)
}

func readScript(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return data, nil
}
