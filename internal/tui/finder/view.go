package finder

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elsanchez/niche-finder/internal/domain"
)

// Styles with adaptive colors for light/dark backgrounds
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"}).
			MarginLeft(2)

	titleAltStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "34", Dark: "42"}).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "9"}).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "34", Dark: "10"}).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"})

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "63", Dark: "63"}).
			Padding(1, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "160", Dark: "9"}).
			Padding(1, 2)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"})

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})

	scoreStyle = lipgloss.NewStyle().Bold(true)
)

// title renders a screen heading with the configured accent
func (m Model) title(s string) string {
	if m.theme == "green" {
		return titleAltStyle.Render(s)
	}
	return titleStyle.Render(s)
}

// View renders the current view
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	// The exhaustion modal replaces the whole screen until dismissed
	if m.blockingError != "" {
		body := errorStyle.Render("Generation failed") + "\n\n" + m.blockingError +
			"\n\n" + helpStyle.Render("Press any key to dismiss")
		return modalStyle.Render(body)
	}

	var content string

	switch m.currentView {
	case viewSearch:
		content = m.viewSearch()
	case viewResults:
		content = m.viewResults()
	case viewDetail:
		content = m.viewDetail()
	case viewContentPlan:
		content = m.viewContentPlan()
	case viewKeys:
		content = m.viewKeys()
	case viewLibrary:
		content = m.viewLibrary()
	case viewChatPassword:
		content = m.viewChatPassword()
	case viewChat:
		content = m.viewChat()
	case viewHelp:
		content = m.viewHelp()
	default:
		content = m.viewSearch()
	}

	if m.errorMessage != "" {
		content += "\n" + errorStyle.Render("Error: "+m.errorMessage)
	} else if m.statusMessage != "" {
		content += "\n" + successStyle.Render(m.statusMessage)
	}

	if m.loading {
		content += "\n" + m.spinner.View() + " Working..."
	}

	return content
}

// viewSearch renders the search form
func (m Model) viewSearch() string {
	title := m.title("🔎 Niche Finder")

	var b strings.Builder
	b.WriteString(title + "\n\n")

	label := func(focused bool, text string) string {
		if focused {
			return activeStyle.Render("  " + text)
		}
		return inactiveStyle.Render("  " + text)
	}

	b.WriteString(label(m.searchFocus == 0, "Channel idea:") + "\n")
	b.WriteString("  " + m.ideaInput.View() + "\n\n")

	b.WriteString(label(m.searchFocus == 1, "Target market: ← →") + "\n")
	if m.marketCursor == len(markets)-1 {
		b.WriteString("  " + m.customMarket.View() + "\n\n")
	} else {
		b.WriteString("  " + markets[m.marketCursor] + "\n\n")
	}

	b.WriteString(label(m.searchFocus == 2, "Model: ← →") + "\n")
	b.WriteString("  " + m.models[m.modelCursor] + "\n\n")

	b.WriteString(label(m.searchFocus == 3, "Filters: ↑/↓ pick, space cycle") + "\n")
	filterNames := []string{"Interest", "Monetization", "Competition", "Sustainability"}
	filterValues := []domain.FilterLevel{m.filters.Interest, m.filters.Monetization, m.filters.Competition, m.filters.Sustainability}
	for i, name := range filterNames {
		cursor := "  "
		if m.searchFocus == 3 && m.filterCursor == i {
			cursor = "▸ "
		}
		b.WriteString(fmt.Sprintf("  %s%-15s %s\n", cursor, name, filterValues[i]))
	}

	mode := "related niches"
	if m.directMode {
		mode = "analyze keyword directly"
	}
	b.WriteString("\n  Mode: " + mode + " (ctrl+d toggles)\n")

	help := helpStyle.Render(
		"  Tab next field • Enter search • ctrl+r back to results • ctrl+k keys • ctrl+l library • ctrl+t training • ctrl+g help • Esc quit",
	)

	return boxStyle.Render(b.String()) + "\n\n" + help
}

// viewResults renders the niche list
func (m Model) viewResults() string {
	title := m.title("📋 Niches")

	var b strings.Builder
	b.WriteString(title + "\n\n")

	result := m.session.Result()
	if result == nil || len(result.Niches) == 0 {
		b.WriteString("  No results yet. Press 'n' to start a search.\n")
	} else {
		b.WriteString(fmt.Sprintf("  %d niches (page %d) • model %s%s\n\n",
			len(result.Niches), m.session.Depth(), m.svc.Model(), m.activeKeyBadge()))

		for i, n := range result.Niches {
			cursor := "  "
			if i == m.nicheCursor {
				cursor = "▸ "
			}

			b.WriteString(fmt.Sprintf("  %s%s\n", cursor, scoreStyle.Render(n.NicheName.Translated)))
			b.WriteString(fmt.Sprintf("      %s\n", helpStyle.Render(n.NicheName.Original)))
			b.WriteString(fmt.Sprintf("      interest %d • monetization %d • competition %d • sustainability %d\n",
				n.Analysis.InterestLevel.Score,
				n.Analysis.MonetizationPotential.Score,
				n.Analysis.CompetitionLevel.Score,
				n.Analysis.Sustainability.Score))
		}
	}

	help := "\n" + helpStyle.Render(
		"  ↑/↓ move • Enter details • m more niches • s save • n new search • q quit",
	)

	return b.String() + help
}

// activeKeyBadge shows which credential served the last call
func (m Model) activeKeyBadge() string {
	pool, err := m.svc.Pool()
	if err != nil {
		return ""
	}
	if idx := pool.ActiveIndex(); idx >= 0 {
		return fmt.Sprintf(" • key #%d", idx+1)
	}
	return ""
}

// viewDetail renders one niche with its video ideas
func (m Model) viewDetail() string {
	niche, ok := m.currentNiche()
	if !ok {
		return "  Niche no longer available.\n"
	}

	var b strings.Builder
	b.WriteString(m.title("📺 "+niche.NicheName.Translated) + "\n")
	b.WriteString("  " + helpStyle.Render(niche.NicheName.Original) + "\n\n")

	b.WriteString("  " + niche.Description + "\n\n")
	b.WriteString("  Audience: " + niche.AudienceDemographics + "\n\n")

	metric := func(name string, score int, explanation string) {
		b.WriteString(fmt.Sprintf("  %-15s %s  %s\n", name, scoreStyle.Render(fmt.Sprintf("%2d/10", score)), helpStyle.Render(explanation)))
	}
	metric("Interest", niche.Analysis.InterestLevel.Score, niche.Analysis.InterestLevel.Explanation)
	metric("Monetization", niche.Analysis.MonetizationPotential.Score,
		niche.Analysis.MonetizationPotential.RPMEstimate+" — "+niche.Analysis.MonetizationPotential.Explanation)
	metric("Competition", niche.Analysis.CompetitionLevel.Score, niche.Analysis.CompetitionLevel.Explanation)
	metric("Sustainability", niche.Analysis.Sustainability.Score, niche.Analysis.Sustainability.Explanation)

	b.WriteString("\n  Strategy: " + niche.ContentStrategy + "\n\n")

	b.WriteString(fmt.Sprintf("  Video ideas (%d):\n", len(niche.VideoIdeas)))
	for i, idea := range niche.VideoIdeas {
		cursor := "  "
		if i == m.ideaCursor {
			cursor = "▸ "
		}
		b.WriteString(fmt.Sprintf("  %s%s\n", cursor, idea.Title.Translated))
		if i == m.ideaCursor && idea.DraftContent != "" {
			b.WriteString("      " + helpStyle.Render(idea.DraftContent) + "\n")
		}
	}

	help := "\n" + helpStyle.Render(
		"  ↑/↓ move • v more ideas • p content plan • s save • e export txt • Esc back",
	)

	return b.String() + help
}

// viewContentPlan renders the detailed content plan
func (m Model) viewContentPlan() string {
	title := m.title("🗓 Content Plan - " + m.planName)

	var b strings.Builder
	b.WriteString(title + "\n\n")

	plan, ok := m.session.ContentPlan(m.planName)
	if !ok || len(plan.ContentIdeas) == 0 {
		b.WriteString("  No content plan yet.\n")
	} else {
		for i, idea := range plan.ContentIdeas {
			cursor := "  "
			if i == m.planCursor {
				cursor = "▸ "
			}
			b.WriteString(fmt.Sprintf("  %s%d. %s\n", cursor, i+1, scoreStyle.Render(idea.Title.Translated)))

			if i == m.planCursor {
				b.WriteString("      Hook: " + idea.Hook + "\n")
				for _, point := range idea.MainPoints {
					b.WriteString("      • " + point + "\n")
				}
				if idea.VisualSuggestions != "" {
					b.WriteString("      Visuals: " + helpStyle.Render(idea.VisualSuggestions) + "\n")
				}
				if idea.CallToAction != "" {
					b.WriteString("      CTA: " + helpStyle.Render(idea.CallToAction) + "\n")
				}
			}
		}
	}

	help := "\n" + helpStyle.Render("  ↑/↓ move • m more ideas • e export txt • Esc back")

	return b.String() + help
}

// viewKeys renders the key manager
func (m Model) viewKeys() string {
	title := m.title("🔑 API Keys")

	var b strings.Builder
	b.WriteString(title + "\n\n")

	gemini := "  gemini "
	openai := "  openai "
	if m.keyProvider == domain.ProviderGemini {
		gemini = activeStyle.Render("▸ gemini ")
	} else {
		openai = activeStyle.Render("▸ openai ")
	}
	b.WriteString(gemini + openai + helpStyle.Render("(tab switches)") + "\n\n")

	pool, err := m.svc.PoolFor(m.keyProvider)
	if err != nil {
		b.WriteString("  " + err.Error() + "\n")
		return b.String()
	}

	keys := pool.Keys()
	statuses := pool.Statuses()
	active := pool.ActiveIndex()

	if len(keys) == 0 {
		b.WriteString("  No keys yet. Press 'a' to add one.\n")
	}

	for i, k := range keys {
		cursor := "  "
		if i == m.keyCursor {
			cursor = "▸ "
		}

		icon := "❓"
		switch statuses[i] {
		case domain.StatusValid:
			icon = "✓"
		case domain.StatusInvalid:
			icon = "✗"
		case domain.StatusChecking:
			icon = m.spinner.View()
		}

		star := " "
		if i == active {
			star = "⭐"
		}

		b.WriteString(fmt.Sprintf("  %s%s %s %s\n", cursor, star, icon, maskKey(k)))
	}

	if m.keyEditing {
		b.WriteString("\n  New key: " + m.keyInput.View() + "\n")
		b.WriteString(helpStyle.Render("  Enter add • Esc cancel") + "\n")
	}

	help := "\n" + helpStyle.Render("  ↑/↓ move • a add • d delete • v validate all • tab provider • Esc back")

	return b.String() + help
}

// maskKey hides all but the edges of a credential
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("•", len(key))
	}
	return key[:4] + strings.Repeat("•", 6) + key[len(key)-4:]
}

// viewLibrary renders the saved niche library
func (m Model) viewLibrary() string {
	title := m.title("📚 Saved Niches")

	var b strings.Builder
	b.WriteString(title + "\n\n")

	if len(m.library) == 0 {
		b.WriteString("  Library is empty. Save niches from the results view with 's'.\n")
	} else {
		for i, n := range m.library {
			cursor := "  "
			if i == m.libraryCursor {
				cursor = "▸ "
			}
			b.WriteString(fmt.Sprintf("  %s%s %s\n", cursor, scoreStyle.Render(n.NicheName.Translated),
				helpStyle.Render(fmt.Sprintf("(%d video ideas)", len(n.VideoIdeas)))))
		}
	}

	help := "\n" + helpStyle.Render("  ↑/↓ move • Enter open • d delete • D delete all • x export csv • Esc back")

	return b.String() + help
}

// viewChatPassword renders the training chat gate
func (m Model) viewChatPassword() string {
	title := m.title("🔒 Training Chat")

	var b strings.Builder
	b.WriteString(title + "\n\n")

	if m.settingPassword {
		b.WriteString("  No password set yet. The password you enter now becomes the gate.\n\n")
	} else {
		b.WriteString("  Enter the training password.\n\n")
	}

	b.WriteString("  " + m.passwordInput.View() + "\n")

	help := "\n" + helpStyle.Render("  Enter confirm • Esc back")

	return boxStyle.Render(b.String()) + "\n" + help
}

// viewChat renders the training chat
func (m Model) viewChat() string {
	title := m.title("💬 Training Chat")

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString("  " + helpStyle.Render("Everything here is sent as context with every generation.") + "\n\n")

	if len(m.chatHistory) == 0 {
		b.WriteString("  No training messages yet.\n")
	}

	// Show the tail that fits on screen
	start := 0
	if max := 10; len(m.chatHistory) > max {
		start = len(m.chatHistory) - max
	}
	for _, msg := range m.chatHistory[start:] {
		speaker := "you"
		style := activeStyle
		if msg.Role == domain.RoleModel {
			speaker = "model"
			style = inactiveStyle
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", style.Render(speaker), msg.Text))
	}

	b.WriteString("\n  " + m.chatInput.View() + "\n")

	help := "\n" + helpStyle.Render("  Enter send • Esc back")

	return b.String() + help
}

// viewHelp renders the help screen
func (m Model) viewHelp() string {
	title := m.title("Help")

	help := `
  Global:
    ctrl+k     API key manager
    ctrl+l     Saved niche library
    ctrl+t     Training chat (password gated)
    ctrl+g     This help
    ctrl+b     Toggle accent color
    ctrl+c     Quit

  Search form:
    Tab        Next field
    ← / →      Change market / model
    Space      Cycle filter level
    ctrl+d     Toggle direct keyword analysis
    ctrl+r     Return to previous results
    Enter      Search

  Results:
    Enter      Niche details
    m          Load more niches (never repeats shown ones)
    s          Save niche to library

  Details:
    v          More video ideas for this niche
    p          Content plan
    e          Export ideas as text

  Keys:
    a / d      Add / delete key
    v          Validate all keys
    tab        Switch provider

  Every generation walks the key list from the top and uses the first
  key that answers; keys that fail along the way are marked invalid.
`

	return title + "\n" + help + "\n" + helpStyle.Render("  Press any key to return")
}
