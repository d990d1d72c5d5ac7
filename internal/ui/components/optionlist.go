package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/junwei/stepmath/internal/ui/theme"
)

// Choice is one selectable answer option.
type Choice struct {
	ID      string
	Text    string
	Correct bool
}

// OptionList renders the answer options of a step. Selection state is
// owned by the caller; the component only tracks the cursor.
type OptionList struct {
	Choices  []Choice
	Multiple bool
	Cursor   int

	// Selected maps option IDs to their chosen state.
	Selected map[string]bool

	// Locked switches rendering to the post-confirm color scheme.
	Locked bool
}

// NewOptionList creates an option list with the cursor on the first choice.
func NewOptionList(choices []Choice, multiple bool) OptionList {
	return OptionList{
		Choices:  choices,
		Multiple: multiple,
		Selected: make(map[string]bool),
	}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement. Toggle and confirm keys are left to
// the owning screen.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Locked {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Choices)-1 {
			o.Cursor++
		}
	}

	return o, nil
}

// CursorID returns the ID of the choice under the cursor.
func (o OptionList) CursorID() string {
	if o.Cursor < 0 || o.Cursor >= len(o.Choices) {
		return ""
	}
	return o.Choices[o.Cursor].ID
}

// View renders the option list.
func (o OptionList) View() string {
	var s string

	for i, c := range o.Choices {
		label := string(rune('A' + i))
		prefix := "  "
		if i == o.Cursor && !o.Locked {
			prefix = "▸ "
		}

		mark := ""
		if o.Multiple {
			mark = "[ ] "
			if o.Selected[c.ID] {
				mark = "[x] "
			}
		} else if o.Selected[c.ID] {
			mark = "● "
		}

		line := fmt.Sprintf("%s%s)  %s%s", prefix, label, mark, c.Text)

		if o.Locked {
			switch {
			case c.Correct:
				s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
			case o.Selected[c.ID]:
				s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
			continue
		}

		switch {
		case i == o.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case o.Selected[c.ID]:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
