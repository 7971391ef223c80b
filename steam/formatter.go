package steam

import (
	"fmt"
	"strings"
	"time"
)

// FormatOptions controls how much detail the formatter prints
type FormatOptions struct {
	ShowDetails bool
}

// ConsoleFormatter provides console output formatting for libraries
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatGameList formats a list of games for console display
func (f *ConsoleFormatter) FormatGameList(games []Game, options FormatOptions) string {
	if len(games) == 0 {
		return "No games found"
	}

	var sb strings.Builder

	sb.WriteString("\nGame")
	if len(games) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(games))

	for i, game := range games {
		isLast := i == len(games)-1
		f.formatGame(&sb, game, isLast, options)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatGame(sb *strings.Builder, game Game, isLast bool, options FormatOptions) {
	prefix := "├"
	if isLast {
		prefix = "╰"
	}

	name := game.Name
	if name == "" {
		name = "Unknown"
	}
	fmt.Fprintf(sb, "%s── %s (%d)\n", prefix, name, game.AppID)

	indent := "│   "
	if isLast {
		indent = "    "
	}

	fmt.Fprintf(sb, "%sPlayed: %s\n", indent, FormatPlaytime(game.Playtime))

	if options.ShowDetails {
		fmt.Fprintf(sb, "%sStore: %s\n", indent, game.StorePageURL())
		if icon := game.IconURL(); icon != "" {
			fmt.Fprintf(sb, "%sIcon: %s\n", indent, icon)
		}
	}
}

// FormatPlaytime renders a playtime as hours and minutes
func FormatPlaytime(d time.Duration) string {
	if d <= 0 {
		return "never"
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}
