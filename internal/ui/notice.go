package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#dc3545")).
			Foreground(lipgloss.Color("#dc3545")).
			Bold(true).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#28a745")).
			Padding(0, 1)
)

// Notifier prints alerts and notices as boxed messages
type Notifier struct {
	out io.Writer
}

// NewNotifier creates a notifier writing to out
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Alert reports something the user has to fix before continuing
func (n *Notifier) Alert(message string) {
	fmt.Fprintln(n.out, alertStyle.Render(message))
}

// Notice reports the outcome of an action
func (n *Notifier) Notice(message string) {
	fmt.Fprintln(n.out, noticeStyle.Render(message))
}
