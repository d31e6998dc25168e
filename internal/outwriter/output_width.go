package outwriter

import (
	"os"

	"github.com/huangsam/babscore/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for chapter names in table output
// based on terminal width and the fixed metric columns.
func GetMaxTableNameWidth(cfg *contract.Config, hasIssues bool) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + EOR + DK + IKK + KE + Label with borders/padding
	baseWidth := 70 + 2*cfg.Precision
	if hasIssues {
		baseWidth += 30
	}

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 48 {
		return 48
	}
	return available
}
