package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pagegen/pkg/document"
	"github.com/goliatone/go-pagegen/pkg/migrate"
)

func (a *app) newMigrateCommand() *cobra.Command {
	var (
		output string
		yes    bool
	)
	cmd := &cobra.Command{
		Use:   "migrate <document>",
		Short: "Upgrade a legacy page document to the current element model",
		Long: `Migrate rewrites display, input and container elements into field,
record, markup and structure elements.

Without --output the migrated document is written to stdout and the report to
stderr. Existing output files are only replaced after confirmation or --yes.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMigrate(cmd, args[0], output, yes)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the migrated document to this file (.json, .yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "overwrite the output file without asking")
	cmd.Flags().Bool("assign-ids", false, "assign UUIDs to elements without an id")
	return cmd
}

func (a *app) runMigrate(cmd *cobra.Command, input, output string, yes bool) error {
	doc, err := document.LoadFile(input)
	if err != nil {
		return err
	}

	options := []migrate.Option{migrate.WithLogger(a.logger.WithPrefix("pagegen/migrate"))}
	if a.cfg.AssignIDs {
		options = append(options, migrate.WithUUIDs())
	}
	migrated, stats := migrate.New(options...).MigratePage(doc)

	if output == "" {
		payload, err := document.Marshal(migrated, document.FormatJSON)
		if err != nil {
			return err
		}
		if _, err := a.streams.Out.Write(payload); err != nil {
			return err
		}
		if err := a.reportTo(a.streams.Err).Migration(input, "", stats); err != nil {
			return err
		}
	} else {
		if err := a.confirmOverwrite(cmd, output, yes); err != nil {
			return err
		}
		payload, err := document.Marshal(migrated, document.FormatFromPath(output))
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, payload, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		a.logger.Info("wrote migrated document", "path", output, "elements", stats.TotalElements)
		if err := a.printer.Migration(input, output, stats); err != nil {
			return err
		}
	}

	if !stats.OK() {
		return fmt.Errorf("%w: %d error(s)", ErrMigrationFailed, len(stats.Errors))
	}
	return nil
}

func (a *app) confirmOverwrite(cmd *cobra.Command, path string, yes bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if yes {
		return nil
	}
	ok, err := a.confirm(cmd.Context(), fmt.Sprintf("%s exists. Overwrite?", path))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrOverwriteDenied, path)
	}
	return nil
}
