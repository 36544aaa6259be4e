package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dotkit/internal/manifest"
)

// errNoManifests reports that neither the command line nor the
// configuration names a manifest file.
var errNoManifests = errors.New("no manifests configured; pass a path or set manifest.paths in dotkit.toml")

var manifestProfile string

// manifestCmd inspects the editor plugin manifests.
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect the editor plugin manifests",
	Long: `Manifests declare the plugins the editor loads: identifier, lazy or
eager loading, priority among eager loads, setup options, and whether
the plugin is applied after setup. Named profiles derive per-machine
variants from the same plugin list.`,
}

// manifestListCmd prints descriptors and their load order.
var manifestListCmd = &cobra.Command{
	Use:   "list [MANIFEST...]",
	Short: "List plugin descriptors and their load order",
	RunE:  runManifestList,
}

// manifestLintCmd reports findings that do not fail validation.
var manifestLintCmd = &cobra.Command{
	Use:   "lint [MANIFEST...]",
	Short: "Report manifest problems and drift between copies",
	RunE:  runManifestLint,
}

// manifestDiffCmd compares two manifests per identifier.
var manifestDiffCmd = &cobra.Command{
	Use:   "diff [MANIFEST MANIFEST]",
	Short: "Show per-identifier divergence between two manifests",
	Args:  cobra.RangeArgs(0, 2),
	RunE:  runManifestDiff,
}

func init() {
	manifestCmd.PersistentFlags().StringVar(&manifestProfile, "profile", "", "Apply this profile before inspecting (default: manifest.profile from the configuration)")
	manifestCmd.AddCommand(manifestListCmd)
	manifestCmd.AddCommand(manifestLintCmd)
	manifestCmd.AddCommand(manifestDiffCmd)
}

// manifestPaths resolves which manifest files a subcommand works on:
// the positional arguments when given, the configured paths otherwise.
func manifestPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	paths := cfg.Manifest().Paths
	if len(paths) == 0 {
		return nil, errNoManifests
	}
	return paths, nil
}

// profileName resolves the profile to apply: the --profile flag wins,
// then the configured default.
func profileName(cmd *cobra.Command) string {
	if cmd.Flags().Changed("profile") {
		return manifestProfile
	}
	return cfg.Manifest().Profile
}

// loadManifest reads one manifest and applies the selected profile.
func loadManifest(ctx context.Context, path, profile string) (*manifest.Manifest, error) {
	m, err := manifest.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return m.Apply(profile)
}

func runManifestList(cmd *cobra.Command, args []string) error {
	paths, err := manifestPaths(args)
	if err != nil {
		return err
	}
	profile := profileName(cmd)

	for i, path := range paths {
		m, err := loadManifest(cmd.Context(), path, profile)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		printManifest(m, profile)
	}
	return nil
}

func runManifestLint(cmd *cobra.Command, args []string) error {
	paths, err := manifestPaths(args)
	if err != nil {
		return err
	}
	profile := profileName(cmd)

	clean := true
	manifests := make([]*manifest.Manifest, 0, len(paths))
	for _, path := range paths {
		m, err := loadManifest(cmd.Context(), path, profile)
		if err != nil {
			return err
		}
		manifests = append(manifests, m)

		for _, p := range m.Lint() {
			clean = false
			fmt.Printf("%s %s\n", warnStyle.Render(path+":"), p)
		}
	}

	// Several manifests carrying the same identifiers is drift; show
	// what disagrees so the copies can be folded into one manifest with
	// profiles.
	for i := 1; i < len(manifests); i++ {
		a, b := manifests[0], manifests[i]
		for _, div := range manifest.Diff(a, b) {
			clean = false
			fmt.Printf("%s %s\n",
				warnStyle.Render(fmt.Sprintf("drift %s / %s:", a.Path(), b.Path())), div)
		}
	}

	if clean {
		fmt.Println(okStyle.Render("No problems found."))
	}
	return nil
}

func runManifestDiff(cmd *cobra.Command, args []string) error {
	paths, err := manifestPaths(args)
	if err != nil {
		return err
	}
	if len(paths) != 2 {
		return fmt.Errorf("diff needs exactly two manifests, got %d", len(paths))
	}
	profile := profileName(cmd)

	a, err := loadManifest(cmd.Context(), paths[0], profile)
	if err != nil {
		return err
	}
	b, err := loadManifest(cmd.Context(), paths[1], profile)
	if err != nil {
		return err
	}

	divs := manifest.Diff(a, b)
	if len(divs) == 0 {
		fmt.Println(okStyle.Render("Manifests agree."))
		return nil
	}
	fmt.Println(headingStyle.Render(fmt.Sprintf("%d divergences", len(divs))) +
		dimStyle.Render(fmt.Sprintf("  A=%s  B=%s", paths[0], paths[1])))
	for _, d := range divs {
		fmt.Printf("  %s\n", d)
	}
	return nil
}

func printManifest(m *manifest.Manifest, profile string) {
	title := m.Path()
	if profile != "" {
		title += dimStyle.Render(" [profile " + profile + "]")
	}
	fmt.Println(headingStyle.Render(title) + dimStyle.Render("  "+m.String()))

	for _, d := range m.Plugins {
		mode := "lazy "
		if !d.Lazy {
			mode = "eager"
		}
		line := "  " + dimStyle.Render(mode) + " " + pathStyle.Render(d.Identifier)
		if !d.Lazy {
			line += dimStyle.Render(fmt.Sprintf("  priority %d", d.Priority))
		}
		if d.Activate {
			line += okStyle.Render("  activate")
		}
		if len(d.Options) > 0 {
			line += dimStyle.Render(fmt.Sprintf("  opts %v", d.Options))
		}
		fmt.Println(line)
	}

	if eager := m.EagerOrder(); len(eager) > 0 {
		names := make([]string, len(eager))
		for i, d := range eager {
			names[i] = d.Identifier
		}
		fmt.Println(dimStyle.Render("  load order: " + strings.Join(names, ", ")))
	}
	if active, ok := m.Active(); ok {
		fmt.Println(okStyle.Render("  active: ") + active.Identifier)
	}
}
