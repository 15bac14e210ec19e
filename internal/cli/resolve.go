package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pagegen/pkg/binding"
	"github.com/goliatone/go-pagegen/pkg/document"
)

func (a *app) newResolveCommand() *cobra.Command {
	var (
		providersPath string
		envFile       string
	)
	cmd := &cobra.Command{
		Use:   "resolve <binding>",
		Short: "Resolve a data binding against a provider bundle",
		Long: `Resolve reads a binding object (JSON or YAML) and prints its value.

The provider bundle holds the page, user, system, api and store trees.
Variables from --env-file are exposed as system.env.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runResolve(args[0], providersPath, envFile)
		},
	}
	cmd.Flags().StringVarP(&providersPath, "providers", "p", "", "provider bundle file (.json, .yaml)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file exposed as system.env")
	return cmd
}

func (a *app) runResolve(path, providersPath, envFile string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read binding %s: %w", path, err)
	}
	values, err := document.ParseValues(data, path)
	if err != nil {
		return err
	}
	b, err := document.DecodeBinding(values)
	if err != nil {
		return err
	}

	providers, err := loadProviders(providersPath, envFile)
	if err != nil {
		return err
	}

	resolver := binding.New(
		binding.WithLogger(a.logger.WithPrefix("pagegen/binding")),
		binding.WithLocale(a.cfg.Locale),
		binding.WithCurrency(a.cfg.Currency),
	)
	return a.printer.Value(resolver.Resolve(b, providers))
}

// loadProviders reads the provider bundle and exposes envFile as system.env.
// Both paths are optional.
func loadProviders(providersPath, envFile string) (binding.Providers, error) {
	var providers binding.Providers
	if providersPath != "" {
		var err error
		if providers, err = binding.LoadProviders(providersPath); err != nil {
			return binding.Providers{}, err
		}
	}
	if envFile != "" {
		env, err := godotenv.Read(envFile)
		if err != nil {
			return binding.Providers{}, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		vars := make(map[string]any, len(env))
		for key, value := range env {
			vars[key] = value
		}
		providers = providers.WithSystem(map[string]any{"env": vars})
	}
	return providers, nil
}
