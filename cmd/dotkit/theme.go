package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"dotkit/internal/theme"
)

// themeCmd works with the colorscheme palettes the manifests select.
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or preview colorscheme palettes",
	Long: `Without a palette name, the theme commands resolve the manifest's
active colorscheme plugin (honoring its style option and the selected
profile) to one of the builtin palettes. Palette names from "theme
show" can be passed explicitly instead.`,
}

// themeShowCmd prints a palette to stdout.
var themeShowCmd = &cobra.Command{
	Use:   "show [NAME]",
	Short: "Print a palette with its swatches",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runThemeShow,
}

// themePreviewCmd renders a palette full-screen.
var themePreviewCmd = &cobra.Command{
	Use:   "preview [NAME]",
	Short: "Preview a palette full-screen; any key exits",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runThemePreview,
}

func init() {
	themeCmd.PersistentFlags().StringVar(&manifestProfile, "profile", "", "Resolve the active theme with this profile applied")
	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themePreviewCmd)
}

// resolvePalette picks the palette to operate on: the named one, the
// manifest's active descriptor, or the default when no manifests are
// configured.
func resolvePalette(ctx context.Context, cmd *cobra.Command, args []string) (*theme.Palette, error) {
	if len(args) == 1 {
		return theme.Get(args[0])
	}

	paths, err := manifestPaths(nil)
	if err != nil {
		if errors.Is(err, errNoManifests) {
			return theme.Default(), nil
		}
		return nil, err
	}

	m, err := loadManifest(ctx, paths[0], profileName(cmd))
	if err != nil {
		return nil, err
	}
	active, ok := m.Active()
	if !ok {
		return theme.Default(), nil
	}
	return theme.Resolve(active)
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	p, err := resolvePalette(cmd.Context(), cmd, args)
	if err != nil {
		return err
	}
	printPalette(p)

	fmt.Println(dimStyle.Render("\navailable: " + strings.Join(theme.Names(), ", ")))
	return nil
}

func runThemePreview(cmd *cobra.Command, args []string) error {
	p, err := resolvePalette(cmd.Context(), cmd, args)
	if err != nil {
		return err
	}
	return theme.Preview(p)
}

func printPalette(p *theme.Palette) {
	variant := "dark"
	if !p.Dark {
		variant = "light"
	}
	fmt.Println(headingStyle.Render(p.Name) + dimStyle.Render(" ("+variant+")"))
	fmt.Printf("  background %s   foreground %s   contrast %.2f:1\n",
		p.Background.Hex(), p.Foreground.Hex(), theme.Contrast(p.Foreground, p.Background))

	for _, a := range p.Accents {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(a.Color.Hex())).
			Foreground(lipgloss.Color(theme.ContrastText(a.Color).Hex())).
			Render(" " + a.Color.Hex() + " ")
		fmt.Printf("  %-10s %s\n", a.Name, swatch)
	}
}
