package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contentbuild/internal/featureflags"
	"contentbuild/internal/filters"
	"contentbuild/internal/render"
)

func (a *app) renderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render <template> <data.json>",
		Short: "Render a Liquid template with the content filters",
		Long: `Renders a Liquid template against a JSON document. When a feature flag is
enabled for the build type and a variant such as page.featureGraphQLModuleUpdate.liquid
exists next to the template, the variant is rendered instead. Enabled flags are
also bound as template variables.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := featureflags.Enabled(a.cfg.BuildType)
			if err != nil {
				return err
			}
			dir, name := filepath.Split(args[0])
			if dir == "" {
				dir = "."
			}
			resolved := featureflags.Resolver{FS: os.DirFS(dir), Flags: flags}.Resolve(name, "")
			if resolved != name {
				a.log.Debug("template variant selected", zap.String("template", resolved))
			}
			tpl, err := os.ReadFile(filepath.Join(dir, resolved))
			if err != nil {
				return err
			}
			bindings, err := readBindings(args[1])
			if err != nil {
				return err
			}
			for f, on := range flags {
				bindings[string(f)] = on
			}

			loc, err := time.LoadLocation(a.cfg.Timezone)
			if err != nil {
				return fmt.Errorf("timezone: %w", err)
			}
			set := filters.New(filters.Options{Location: loc, CMSFlags: a.cfg.CMSFeatureFlags, Logger: a.log})
			out, err := render.NewEngine(set, a.log).Render(string(tpl), bindings)
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, out)
			return nil
		},
	}
}

func readBindings(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	bindings := map[string]any{}
	if err := json.Unmarshal(raw, &bindings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return bindings, nil
}
