package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/cahaseler/cc-track/internal/app"
	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/usecase"
)

// newConfigCommand creates the config command.
// Without a subcommand it prints the effective configuration.
func newConfigCommand(c *app.Container) *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize configuration",
		Long: `Show the effective configuration after merging all sources:
built-in defaults, the global config ($XDG_CONFIG_HOME/cc-track/config.toml)
and the repository config (.claude/cc-track.toml).

Use --template to print a commented configuration template instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if template {
				return printConfigTemplate(cmd, c)
			}
			return showConfig(cmd, c)
		},
	}

	cmd.Flags().BoolVar(&template, "template", false, "Print a commented configuration template")

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, c)
		},
	}
}

func showConfig(cmd *cobra.Command, c *app.Container) error {
	if err := requireContainer(c); err != nil {
		return err
	}

	out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	// Display loaded files section
	_, _ = fmt.Fprintln(w, "[Loaded from]")
	layers := []struct {
		err  error
		info domain.ConfigInfo
	}{
		{out.GlobalError, out.GlobalConfig},
		{out.RepoError, out.RepoConfig},
	}
	for _, layer := range layers {
		if layer.info.Path == "" {
			continue
		}
		switch {
		case !layer.info.Exists:
			_, _ = fmt.Fprintf(w, "- %s (not found)\n", layer.info.Path)
		case layer.err != nil:
			_, _ = fmt.Fprintf(w, "- %s (error: %v)\n", layer.info.Path, layer.err)
		default:
			_, _ = fmt.Fprintf(w, "- %s\n", layer.info.Path)
		}
	}

	_, _ = fmt.Fprintln(w)

	// Display effective config in TOML format
	_, _ = fmt.Fprintln(w, "[Effective Config]")
	if out.EffectiveConfig == nil {
		_, _ = fmt.Fprintln(w, "# unavailable until the errors above are fixed")
		return nil
	}
	return formatEffectiveConfig(w, out.EffectiveConfig)
}

// formatEffectiveConfig formats the effective config in TOML format.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(false)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template to stdout.

The template holds the built-in defaults. It does not depend on existing
configuration files and works even if they are broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printConfigTemplate(cmd, c)
		},
	}
}

func printConfigTemplate(cmd *cobra.Command, c *app.Container) error {
	uc := usecase.NewShowConfigTemplate()
	if c != nil {
		uc = c.ShowConfigTemplateUseCase()
	}
	out, err := uc.Execute(cmd.Context(), usecase.ShowConfigTemplateInput{})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Template)
	return nil
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate the repository configuration file",
		Long: `Generate the repository configuration file at .claude/cc-track.toml.

Error conditions:
- Target file already exists (unless --force): error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}

			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{Force: force})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
