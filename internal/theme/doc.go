// Package theme maps the colorscheme plugins a manifest activates to
// concrete terminal palettes.
//
// The registry carries the builtin palettes for the supported plugins:
// tokyonight in its night, storm, and day styles, and solarized in dark
// and light. Resolve picks the palette for an activated descriptor,
// honoring the plugin's "style" option, so the same descriptor that
// drives the editor drives terminal previews here.
//
// Color math goes through go-colorful: blending in Lab space, lightness
// adjustment, and WCAG contrast ratios for picking readable text colors
// over arbitrary swatches.
package theme
