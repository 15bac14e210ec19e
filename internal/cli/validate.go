package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pagegen/pkg/apicatalog"
	"github.com/goliatone/go-pagegen/pkg/document"
	"github.com/goliatone/go-pagegen/pkg/validation"
)

func (a *app) newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Check a page document against the element rules",
		Long: `Validate reports structural errors and per-element errors and warnings.
Only errors make a document invalid.

With --openapi, api bindings are checked against the operations the OpenAPI
document declares.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd, args[0])
		},
	}
	cmd.Flags().String("openapi", "", "OpenAPI document used to check api binding endpoints")
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, path string) error {
	doc, err := document.LoadFile(path)
	if err != nil {
		return err
	}

	var options []validation.Option
	if a.cfg.OpenAPI != "" {
		catalog, err := apicatalog.LoadFile(cmd.Context(), a.cfg.OpenAPI, apicatalog.Options{})
		if err != nil {
			return err
		}
		a.logger.Debug("loaded api catalogue", "path", a.cfg.OpenAPI, "endpoints", catalog.Len())
		options = append(options, validation.WithCatalog(catalog))
	}

	result := validation.New(options...).ValidatePage(doc)
	if err := a.printer.Validation(path, result); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("%w: %d error(s)", ErrValidationFailed, len(result.Errors))
	}
	return nil
}
