package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// styles colour the output when it goes to a terminal. Bound to the console's
// writer, so anything else (pipes, test buffers) gets plain text.
type styles struct {
	playerX func(...string) string
	playerO func(...string) string
	header  func(...string) string
	label   func(...string) string
	banner  func(...string) string
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)

	return styles{
		playerX: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007e50", Dark: "#6afd76"}).Render,
		playerO: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0003ad", Dark: "#5f61fc"}).Render,
		header:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4204b5", Dark: "#8f6cf0"}).Render,
		label:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#414141", Dark: "#8f8f8f"}).Render,
		banner:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#b55404", Dark: "#ddda1d"}).Render,
	}
}

func (that styles) mark(m entity.Mark) string {
	switch m {
	case entity.PlayerX:
		return that.playerX(m.String())
	case entity.PlayerO:
		return that.playerO(m.String())
	default:
		return m.String()
	}
}

func (that *Console) renderBoard(rows [entity.BoardSize][entity.BoardSize]entity.Mark) {
	that.println("")
	that.println(that.styles.label("     0   1   2"))
	for r, row := range rows {
		that.printf("  %s  %s | %s | %s\n", that.styles.label(fmt.Sprint(r)),
			that.styles.mark(row[0]), that.styles.mark(row[1]), that.styles.mark(row[2]))
		if r < entity.BoardSize-1 {
			that.println("    ---+---+---")
		}
	}
	that.println("")
}

func (that *Console) renderLeaderboard(entries []entity.LeaderboardEntry) {
	that.println("")
	that.println(that.styles.header("===== LEADERBOARD ====="))

	w := tabwriter.NewWriter(that.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Name\tWins\tLosses\tDraws")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", entry.Name, entry.Wins, entry.Losses, entry.Draws)
	}
	w.Flush()
}
