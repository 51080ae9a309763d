package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode selects when ANSI colors are written.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts auto, always and never. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

// Enabled resolves the mode for w. Auto enables colors only for terminals.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type palette struct {
	highlight *color.Color
	caret     *color.Color
	gutter    *color.Color
	info      *color.Color
	err       *color.Color
	faint     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		highlight: color.New(color.BgYellow, color.FgBlack),
		caret:     color.New(color.FgYellow, color.Bold),
		gutter:    color.New(color.FgHiBlack),
		info:      color.New(color.FgCyan),
		err:       color.New(color.FgRed),
		faint:     color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.highlight, p.caret, p.gutter, p.info, p.err, p.faint} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
