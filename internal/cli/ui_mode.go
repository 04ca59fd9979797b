package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Play UI modes accepted by --ui.
const (
	uiAuto  = "auto"
	uiLive  = "live"
	uiPlain = "plain"
)

// playUI is how play presents the quiz.
type playUI struct {
	live    bool
	noColor bool
	warning string
}

// isTerminal reports whether a reader or writer is a TTY.
var isTerminal = defaultIsTerminal

// lookupEnv reads NO_COLOR; tests replace it.
var lookupEnv = os.LookupEnv

// resolvePlayUI picks the live table quiz or plain prompts. The live UI
// reads keystrokes, so it needs a terminal on both stdin and stdout.
// Color is off when --no-color is set or NO_COLOR is present.
func resolvePlayUI(mode string, noColor bool, stdin io.Reader, stdout io.Writer) (playUI, error) {
	ui := playUI{noColor: noColor}
	if _, ok := lookupEnv("NO_COLOR"); ok {
		ui.noColor = true
	}

	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = uiAuto
	}
	var missing string
	switch {
	case !isTerminal(stdin):
		missing = "stdin"
	case !isTerminal(stdout):
		missing = "stdout"
	}

	switch normalized {
	case uiAuto:
		ui.live = missing == ""
	case uiLive:
		ui.live = missing == ""
		if missing != "" {
			ui.warning = fmt.Sprintf("Live quiz requested but %s is not a TTY; falling back to plain prompts.", missing)
		}
	case uiPlain:
	default:
		return playUI{}, fmt.Errorf("invalid ui mode %q (expected %s|%s|%s)", mode, uiAuto, uiLive, uiPlain)
	}
	return ui, nil
}

func defaultIsTerminal(stream any) bool {
	if stream == nil {
		return false
	}
	if fder, ok := stream.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
