package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pagegen/pkg/document"
	"github.com/goliatone/go-pagegen/pkg/visibility"
	visibilityexpr "github.com/goliatone/go-pagegen/pkg/visibility/expr"
)

func (a *app) newVisibilityCommand() *cobra.Command {
	var (
		providersPath string
		envFile       string
		extras        map[string]string
	)
	cmd := &cobra.Command{
		Use:   "visibility <document>",
		Short: "Evaluate element visibility rules against a provider bundle",
		Long: `Visibility evaluates every visibility rule in a page document, including
the rules on modals and drawers nested inside structures.

Rules read the page, user, system, api and store trees. Values passed with
--extra are exposed to rules as extras.<key>. A rule that fails to evaluate
hides its element.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVisibility(args[0], providersPath, envFile, extras)
		},
	}
	cmd.Flags().StringVarP(&providersPath, "providers", "p", "", "provider bundle file (.json, .yaml)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file exposed as system.env")
	cmd.Flags().StringToStringVar(&extras, "extra", nil, "caller context exposed as extras (key=value)")
	return cmd
}

func (a *app) runVisibility(path, providersPath, envFile string, extras map[string]string) error {
	doc, err := document.LoadFile(path)
	if err != nil {
		return err
	}
	providers, err := loadProviders(providersPath, envFile)
	if err != nil {
		return err
	}

	ctx := visibility.Context{Values: providers.Vars(), Extras: make(map[string]any, len(extras))}
	for key, value := range extras {
		ctx.Extras[key] = value
	}

	outcomes := visibility.EvaluatePage(visibilityexpr.New(), doc, ctx)
	for _, outcome := range outcomes {
		if outcome.Error != "" {
			a.logger.Warn("visibility rule failed", "path", outcome.Path, "rule", outcome.Rule, "err", outcome.Error)
		}
	}
	return a.printer.Visibility(path, outcomes)
}
