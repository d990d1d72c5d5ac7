package trainer

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerTickMsg is sent every second to refresh the elapsed time and drive
// the auto-advance countdown.
type timerTickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
