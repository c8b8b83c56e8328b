package ui

import (
	"errors"
	"fmt"

	"github.com/Belphemur/ToshoSubtitles/internal/apperrors"

	"github.com/charmbracelet/huh"
	"golang.org/x/text/message"
)

// Action is an entry of the interactive menu
type Action string

const (
	ActionFetch    Action = "fetch"
	ActionSelect   Action = "select"
	ActionDownload Action = "download"
	ActionQuit     Action = "quit"
)

// Selector asks the user which subtitle to download and what to do next
type Selector struct {
	printer    *message.Printer
	accessible bool
}

// NewSelector creates a selector. Accessible mode replaces the full-screen
// prompts with plain line-based questions.
func NewSelector(printer *message.Printer, accessible bool) *Selector {
	return &Selector{printer: printer, accessible: accessible}
}

// SelectSignature shows the distinct captions in first-seen order and returns the
// chosen one. current is preselected when present.
func (s *Selector) SelectSignature(signatures []string, current string) (string, error) {
	if len(signatures) == 0 {
		return "", apperrors.ErrNoSelection
	}

	selected := current
	field := huh.NewSelect[string]().
		Title(s.printer.Sprintf(MsgPanelTitle)).
		Options(SignatureOptions(signatures)...).
		Value(&selected)

	if err := s.run(field); err != nil {
		return "", err
	}
	return selected, nil
}

// ChooseAction shows the action menu. The current selection is shown in the title.
func (s *Selector) ChooseAction(selected string) (Action, error) {
	title := s.printer.Sprintf(MsgPanelTitle)
	if selected != "" {
		title = fmt.Sprintf("%s\n%s", title, s.printer.Sprintf(MsgCurrentSelection, selected))
	}

	action := ActionSelect
	if selected != "" {
		action = ActionDownload
	}
	field := huh.NewSelect[Action]().
		Title(title).
		Options(ActionOptions(s.printer)...).
		Value(&action)

	if err := s.run(field); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ActionQuit, nil
		}
		return "", err
	}
	return action, nil
}

func (s *Selector) run(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithAccessible(s.accessible).
		Run()
}

// SignatureOptions builds one option per signature, keeping their order
func SignatureOptions(signatures []string) []huh.Option[string] {
	return huh.NewOptions(signatures...)
}

// ActionOptions builds the localized action menu
func ActionOptions(printer *message.Printer) []huh.Option[Action] {
	return []huh.Option[Action]{
		huh.NewOption(printer.Sprintf(MsgSelectAction), ActionSelect),
		huh.NewOption(printer.Sprintf(MsgDownloadAction), ActionDownload),
		huh.NewOption(printer.Sprintf(MsgFetchAction), ActionFetch),
		huh.NewOption(printer.Sprintf(MsgQuitAction), ActionQuit),
	}
}
