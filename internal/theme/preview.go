package theme

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

const (
	swatchX     = 24
	swatchWidth = 16
)

// Preview opens the terminal and renders p as a full-screen swatch
// grid. It returns after the first key press.
func Preview(p *Palette) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("theme: open terminal: %w", err)
	}
	return PreviewOn(screen, p)
}

// PreviewOn runs the preview loop on an existing screen. It owns the
// screen lifecycle: Init before drawing, Fini on return.
func PreviewOn(screen tcell.Screen, p *Palette) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("theme: init screen: %w", err)
	}
	defer screen.Fini()

	drawPreview(screen, p)
	screen.Show()

	for {
		switch screen.PollEvent().(type) {
		case *tcell.EventKey:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			drawPreview(screen, p)
			screen.Show()
		}
	}
}

func drawPreview(screen tcell.Screen, p *Palette) {
	width, height := screen.Size()
	base := tcell.StyleDefault.
		Background(toTcell(p.Background)).
		Foreground(toTcell(p.Foreground))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, base)
		}
	}

	drawText(screen, 2, 1, width, base.Bold(true), p.Name)
	drawText(screen, 2, 2, width, base,
		fmt.Sprintf("background %s   foreground %s   contrast %.2f:1",
			p.Background.Hex(), p.Foreground.Hex(), Contrast(p.Foreground, p.Background)))

	row := 4
	for _, a := range p.Accents {
		if row >= height-2 {
			break
		}
		drawText(screen, 2, row, width, base, fmt.Sprintf("%-10s %s", a.Name, a.Color.Hex()))
		swatch := tcell.StyleDefault.
			Background(toTcell(a.Color)).
			Foreground(toTcell(ContrastText(a.Color)))
		for x := swatchX; x < swatchX+swatchWidth && x < width; x++ {
			screen.SetContent(x, row, ' ', nil, swatch)
		}
		row++
	}

	if height > 1 {
		drawText(screen, 2, height-1, width, base.Dim(true), "press any key to close")
	}
}

func drawText(screen tcell.Screen, x, y, width int, style tcell.Style, text string) {
	for i, r := range text {
		if x+i >= width {
			return
		}
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func toTcell(c Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
