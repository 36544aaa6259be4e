package theme

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func screenText(t *testing.T, sim tcell.SimulationScreen) string {
	t.Helper()
	cells, width, _ := sim.GetContents()
	var b strings.Builder
	for i, cell := range cells {
		if len(cell.Runes) > 0 {
			b.WriteRune(cell.Runes[0])
		}
		if (i+1)%width == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func TestDrawPreviewRendersPalette(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer sim.Fini()
	sim.SetSize(80, 24)

	p, ok := Lookup("tokyonight-night")
	if !ok {
		t.Fatal("Lookup(tokyonight-night) not found")
	}
	drawPreview(sim, p)
	sim.Show()

	text := screenText(t, sim)
	for _, want := range []string{
		"tokyonight-night",
		"#1a1b26",
		"magenta",
		"press any key to close",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("preview missing %q\n%s", want, text)
		}
	}
}

func TestDrawPreviewFitsSmallScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer sim.Fini()
	sim.SetSize(20, 5)

	p, _ := Lookup("solarized-light")
	drawPreview(sim, p)
	sim.Show()
}

func TestPreviewOnExitsOnKeyPress(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	p, _ := Lookup("solarized-dark")

	done := make(chan error, 1)
	go func() { done <- PreviewOn(sim, p) }()

	// The screen initializes inside PreviewOn, so keep injecting until
	// one key lands.
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("PreviewOn() error = %v", err)
			}
			return
		case <-tick.C:
			sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
		case <-deadline:
			t.Fatal("PreviewOn did not return after key press")
		}
	}
}
