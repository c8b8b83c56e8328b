package ui

import (
	"strings"

	"github.com/Belphemur/ToshoSubtitles/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/message"
)

var (
	tableTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	fetchedStyle    = cellStyle.Foreground(lipgloss.Color("#28a745"))
	notFoundStyle   = cellStyle.Foreground(lipgloss.Color("#dc3545"))
)

// statusColumn is the index of the status column
const statusColumn = 1

// StatusTable renders the per-episode outcome of a fetch pass. It keeps no state:
// every call rebuilds the whole table from the given results.
type StatusTable struct {
	printer *message.Printer
}

// NewStatusTable creates a status table using printer for its labels
func NewStatusTable(printer *message.Printer) *StatusTable {
	return &StatusTable{printer: printer}
}

// Rows returns the table body, one row per episode in listing order
func (s *StatusTable) Rows(results []models.EpisodeResult) [][]string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{
			result.Episode.Title,
			s.statusText(result),
			s.downloadCell(result),
		})
	}
	return rows
}

// Render returns the titled table
func (s *StatusTable) Render(results []models.EpisodeResult) string {
	rows := s.Rows(results)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(
			s.printer.Sprintf(MsgColumnEpisode),
			s.printer.Sprintf(MsgColumnStatus),
			s.printer.Sprintf(MsgColumnDownload),
		).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == statusColumn && row >= 0 && row < len(results):
				if results[row].Status == models.EpisodeStatusFetched {
					return fetchedStyle
				}
				return notFoundStyle
			default:
				return cellStyle
			}
		})

	return lipgloss.JoinVertical(lipgloss.Left,
		tableTitleStyle.Render(s.printer.Sprintf(MsgStatusTableTitle)),
		t.String(),
	)
}

func (s *StatusTable) statusText(result models.EpisodeResult) string {
	if result.Status == models.EpisodeStatusFetched {
		return s.printer.Sprintf(MsgStatusFetched)
	}

	status := s.printer.Sprintf(MsgStatusNotFound)
	if reason := s.reasonText(result.Reason); reason != "" {
		status += " (" + reason + ")"
	}
	return status
}

func (s *StatusTable) reasonText(reason models.NotFoundReason) string {
	switch reason {
	case models.ReasonFetchFailed:
		return s.printer.Sprintf(MsgReasonFetchFailed)
	case models.ReasonNoSubtitleSection:
		return s.printer.Sprintf(MsgReasonNoSection)
	case models.ReasonNoMatchingCaptions:
		return s.printer.Sprintf(MsgReasonNoMatchCaption)
	default:
		return ""
	}
}

func (s *StatusTable) downloadCell(result models.EpisodeResult) string {
	if len(result.Subtitles) == 0 {
		return s.printer.Sprintf(MsgNoSubtitles)
	}

	lines := make([]string, 0, len(result.Subtitles)*2)
	for _, record := range result.Subtitles {
		lines = append(lines, s.printer.Sprintf(MsgDownloadLink, record.DisplayText), "  "+record.URL)
	}
	return strings.Join(lines, "\n")
}
