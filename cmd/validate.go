package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sqlward/sqlward/pkg/logger"
	"github.com/sqlward/sqlward/pkg/schema"
	"github.com/sqlward/sqlward/pkg/types"
	"github.com/sqlward/sqlward/pkg/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] [sql-file]",
	Short: "Validate SQL statements before execution",
	Long: `Validate SQL statements from a file or the --query flag.

The tool checks structure, schema references (when --schema is given), and
likely performance problems, and reports findings ordered by severity.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	// Flags for validate command
	validateCmd.Flags().StringP("query", "q", "", "SQL statement to validate (instead of a file)")
	validateCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	validateCmd.Flags().StringP("rules", "r", "", "path to rules configuration file")
	validateCmd.Flags().String("schema", "", "path to database schema file (YAML or JSON)")
	validateCmd.Flags().Bool("fail-on-error", false, "exit with non-zero code if errors are found")
	validateCmd.Flags().Bool("fail-on-warning", false, "exit with non-zero code if warnings are found")

	// Bind flags to viper
	_ = viper.BindPFlag("query", validateCmd.Flags().Lookup("query"))
	_ = viper.BindPFlag("output", validateCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("rules", validateCmd.Flags().Lookup("rules"))
	_ = viper.BindPFlag("schema", validateCmd.Flags().Lookup("schema"))
	_ = viper.BindPFlag("fail-on-error", validateCmd.Flags().Lookup("fail-on-error"))
	_ = viper.BindPFlag("fail-on-warning", validateCmd.Flags().Lookup("fail-on-warning"))
}

func runValidate(cmd *cobra.Command, args []string) error {
	logLevel := slog.LevelWarn
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	} else if viper.GetBool("verbose") {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(logger.NewWithLevel(logLevel).GetSlogLogger())

	sql, err := readStatement(args)
	if err != nil {
		return err
	}

	v := validator.New()
	if rulesPath := viper.GetString("rules"); rulesPath != "" {
		if err := v.WithConfig(rulesPath); err != nil {
			return err
		}
	}

	var model *schema.Model
	if schemaPath := viper.GetString("schema"); schemaPath != "" {
		model, err = schema.Load(schemaPath)
		if err != nil {
			return err
		}
		slog.Debug("schema loaded", "tables", len(model.Tables))
	}

	report, err := v.ValidateWithSchema(context.Background(), sql, model)
	if err != nil {
		return err
	}

	if err := outputReport(report, viper.GetString("output")); err != nil {
		return err
	}

	if report.HasErrors() && viper.GetBool("fail-on-error") {
		os.Exit(1)
	}
	if report.HasWarnings() && viper.GetBool("fail-on-warning") {
		os.Exit(1)
	}
	return nil
}

// readStatement takes the SQL from --query or from the file argument.
func readStatement(args []string) (string, error) {
	query := viper.GetString("query")
	if query != "" {
		if len(args) > 0 {
			return "", errors.New("pass either --query or a file, not both")
		}
		return query, nil
	}
	if len(args) == 0 {
		return "", errors.New("no SQL to validate: pass a file or --query")
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.Wrapf(err, "failed to read SQL file: %s", args[0])
	}
	return string(content), nil
}

func outputReport(report *validator.Report, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		return encoder.Encode(report)
	case "text":
		return outputText(report)
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func outputText(report *validator.Report) error {
	if report.IsClean() {
		fmt.Println("No issues found.")
		return nil
	}

	for _, d := range report.Diagnostics {
		position := ""
		if d.Span != nil {
			position = fmt.Sprintf(" at offset %d", d.Span.Start)
		}
		fmt.Printf("[%s] %s%s\n", d.Severity, types.CodeTitle(d.Code), position)
		fmt.Printf("  %s\n", d.Message)
		if d.Suggestion != "" {
			fmt.Printf("  %s\n", d.Suggestion)
		}
		fmt.Println()
	}

	fmt.Println(report.String())
	return nil
}
