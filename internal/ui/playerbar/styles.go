package playerbar

import "github.com/charmbracelet/lipgloss"

var barStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240"))

var textStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Bold(true)

var playlistStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("245"))

var metaStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("243"))

var timeStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("245"))

var progressFilledStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("75"))

var progressEmptyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("238"))
