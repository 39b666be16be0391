package tree

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Markers shown in front of each row.
const (
	MarkerCraftable = "◆"
	MarkerRaw       = "◇"
	NoIconMarker    = "·"
)

// Style holds lipgloss styles for terminal output.
type Style struct {
	Craftable lipgloss.Style
	Raw       lipgloss.Style
	Quantity  lipgloss.Style
	Icon      lipgloss.Style
	Issue     lipgloss.Style
}

// DefaultStyle returns the terminal palette used by the CLI.
func DefaultStyle() Style {
	return Style{
		Craftable: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7FD1B9")),
		Raw:       lipgloss.NewStyle().Foreground(lipgloss.Color("#C9B79C")),
		Quantity:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F2C14E")),
		Icon:      lipgloss.NewStyle().Faint(true),
		Issue:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E4572E")),
	}
}

// PlainStyle renders without any terminal attributes.
func PlainStyle() Style {
	plain := lipgloss.NewStyle()
	return Style{Craftable: plain, Raw: plain, Quantity: plain, Icon: plain, Issue: plain}
}

// Text renders root as an indented list, one node per line, in pre-order.
//
//	◆ Rifle ×1 [rifle-24.webp]
//	  ◆ Metal Parts ×2 [metal_parts-24.webp]
//	    ◇ Scrap Metal ×6 [scrap_metal-24.webp]
func Text(root *View, st Style) string {
	var b strings.Builder
	for _, v := range Flatten(root) {
		b.WriteString(strings.Repeat(" ", v.Indent))
		b.WriteString(line(v, st))
		b.WriteByte('\n')
	}
	return b.String()
}

func line(v *View, st Style) string {
	nameStyle, marker := st.Raw, MarkerRaw
	if v.Craftable {
		nameStyle, marker = st.Craftable, MarkerCraftable
	}

	iconText := NoIconMarker
	if v.Icon != nil {
		iconText = v.Icon.Path()
	}

	parts := []string{
		nameStyle.Render(marker + " " + v.Name),
		st.Quantity.Render(v.QuantityLabel),
		st.Icon.Render("[" + iconText + "]"),
	}
	if v.Truncated {
		parts = append(parts, st.Issue.Render("(too deep)"))
	} else if len(v.Issues) > 0 {
		parts = append(parts, st.Issue.Render("("+strings.Join(v.Issues, ", ")+")"))
	}
	return strings.Join(parts, " ")
}
