package finder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/export"
	"github.com/elsanchez/niche-finder/internal/orchestrator"
	"github.com/elsanchez/niche-finder/internal/provider"
	"github.com/elsanchez/niche-finder/internal/repository"
	"github.com/elsanchez/niche-finder/internal/session"
)

// searchKey is the in-flight guard key for niche searches
const searchKey = "search"

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A credential-exhaustion modal blocks everything until dismissed
		if m.blockingError != "" {
			m.blockingError = ""
			return m, nil
		}

		m.errorMessage = ""
		m.statusMessage = ""

		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case analysisDoneMsg:
		m.session.End(searchKey)
		m.loading = false
		if msg.err != nil {
			m.reportError(msg.err)
			return m, nil
		}
		if msg.loadMore {
			m.session.LoadMore(msg.result)
		} else {
			m.session.NewSearch(msg.result)
			m.nicheCursor = 0
		}
		m.currentView = viewResults
		return m, nil

	case videoIdeasDoneMsg:
		m.session.End(session.VideoIdeasKey(msg.nicheName))
		m.loading = false
		if msg.err != nil {
			m.reportError(msg.err)
			return m, nil
		}
		m.session.AddVideoIdeas(msg.nicheName, msg.ideas)
		return m, nil

	case contentPlanDoneMsg:
		m.session.End(session.ContentPlanKey(msg.nicheName))
		m.loading = false
		if msg.err != nil {
			m.reportError(msg.err)
			return m, nil
		}
		if msg.loadMore {
			m.session.AppendContentPlan(msg.nicheName, msg.plan.ContentIdeas)
		} else {
			m.session.SetContentPlan(msg.nicheName, msg.plan)
			m.planCursor = 0
		}
		m.planName = msg.nicheName
		m.currentView = viewContentPlan
		return m, nil

	case chatDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.reportError(msg.err)
			return m, nil
		}
		m.chatHistory = append(m.chatHistory, domain.ChatMessage{Role: domain.RoleModel, Text: msg.reply})
		return m, saveChatHistory(m.chatRepo, m.chatHistory)

	case chatHistoryLoadedMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.chatHistory = msg.history
		return m, nil

	case validationDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		valid := 0
		for _, st := range msg.statuses {
			if st == domain.StatusValid {
				valid++
			}
		}
		m.statusMessage = fmt.Sprintf("✓ Validation finished: %d/%d keys valid", valid, len(msg.statuses))
		return m, nil

	case libraryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.library = msg.niches
		if m.libraryCursor >= len(m.library) {
			m.libraryCursor = 0
		}
		return m, nil

	case librarySavedMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.statusMessage = "✓ Saved to library: " + msg.nicheName
		return m, nil

	case libraryDeletedMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.statusMessage = "✓ Library updated"
		return m, loadLibrary(m.libraryRepo)

	case exportDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.statusMessage = "✓ Exported to " + msg.path
		return m, nil

	case settingsLoadedMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.trainingPassword = msg.trainingPassword
		if msg.theme != "" {
			m.theme = msg.theme
		}
		return m, nil

	case settingSavedMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
		}
		return m, nil

	case errToastMsg:
		m.errorMessage = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Update the focused text input
	switch m.currentView {
	case viewSearch:
		switch m.searchFocus {
		case 0:
			m.ideaInput, cmd = m.ideaInput.Update(msg)
			cmds = append(cmds, cmd)
		case 1:
			if m.marketCursor == len(markets)-1 {
				m.customMarket, cmd = m.customMarket.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	case viewKeys:
		if m.keyEditing {
			m.keyInput, cmd = m.keyInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	case viewChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
		cmds = append(cmds, cmd)
	case viewChatPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reportError routes an error either to the blocking modal (all
// credentials exhausted) or to the transient status line.
func (m *Model) reportError(err error) {
	var exhausted *orchestrator.ExhaustedCredentialsError
	if errors.As(err, &exhausted) {
		p := domain.ProviderForModel(m.svc.Model())
		m.blockingError = fmt.Sprintf(
			"All %d %s API keys failed. Last error: %v\n\nOpen the key manager (ctrl+k) to add or fix keys.",
			exhausted.Attempts, p, exhausted.LastErr,
		)
		return
	}
	if errors.Is(err, orchestrator.ErrNoCredentials) {
		p := domain.ProviderForModel(m.svc.Model())
		m.blockingError = fmt.Sprintf(
			"No %s API keys configured.\n\nOpen the key manager (ctrl+k) to add keys.", p)
		return
	}
	m.errorMessage = err.Error()
}

// credentialGate enforces the caller-side precondition before any
// generation dispatch: the current provider's pool must hold at least
// one key marked valid. Statuses stay advisory during the call itself;
// the gate only avoids dispatching against a pool known to be bad.
func (m *Model) credentialGate() bool {
	p := domain.ProviderForModel(m.svc.Model())

	pool, err := m.svc.Pool()
	if err != nil {
		m.blockingError = err.Error()
		return false
	}
	if pool.Len() == 0 {
		m.blockingError = fmt.Sprintf(
			"No %s API keys configured.\n\nOpen the key manager (ctrl+k) to add keys.", p)
		return false
	}
	if !pool.HasValid() {
		m.blockingError = fmt.Sprintf(
			"No valid %s API key in the pool.\n\nOpen the key manager (ctrl+k) and press v to validate your keys.", p)
		return false
	}
	return true
}

// handleKeyPress dispatches keyboard input by view
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global shortcuts, available from every view
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+k"))):
		m.previousView = m.currentView
		m.currentView = viewKeys
		m.keyEditing = false
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+l"))):
		m.previousView = m.currentView
		m.currentView = viewLibrary
		m.loading = true
		return m, loadLibrary(m.libraryRepo)

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+t"))):
		m.previousView = m.currentView
		if m.chatUnlocked {
			m.currentView = viewChat
			m.chatInput.Focus()
		} else {
			m.currentView = viewChatPassword
			m.settingPassword = m.trainingPassword == ""
			m.passwordInput.SetValue("")
			m.passwordInput.Focus()
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+g"))):
		m.previousView = m.currentView
		m.currentView = viewHelp
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+b"))):
		if m.theme == "green" {
			m.theme = ""
		} else {
			m.theme = "green"
		}
		return m, saveSetting(m.settingsRepo, repository.SettingTheme, m.theme)
	}

	switch m.currentView {
	case viewSearch:
		return m.handleSearchKeys(msg)
	case viewResults:
		return m.handleResultsKeys(msg)
	case viewDetail:
		return m.handleDetailKeys(msg)
	case viewContentPlan:
		return m.handleContentPlanKeys(msg)
	case viewKeys:
		return m.handleKeyManagerKeys(msg)
	case viewLibrary:
		return m.handleLibraryKeys(msg)
	case viewChatPassword:
		return m.handlePasswordKeys(msg)
	case viewChat:
		return m.handleChatKeys(msg)
	case viewHelp:
		m.currentView = m.previousView
		return m, nil
	}
	return m, nil
}

// handleSearchKeys handles keys in the search form
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
		m.searchFocus = (m.searchFocus + 1) % 4
		m.updateSearchFocus()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab"))):
		m.searchFocus--
		if m.searchFocus < 0 {
			m.searchFocus = 3
		}
		m.updateSearchFocus()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("left"))):
		switch m.searchFocus {
		case 1:
			if m.marketCursor > 0 {
				m.marketCursor--
			}
			return m, nil
		case 2:
			if m.modelCursor > 0 {
				m.modelCursor--
				m.svc.SetModel(m.models[m.modelCursor])
			}
			return m, nil
		}

	case key.Matches(msg, key.NewBinding(key.WithKeys("right"))):
		switch m.searchFocus {
		case 1:
			if m.marketCursor < len(markets)-1 {
				m.marketCursor++
				if m.marketCursor == len(markets)-1 {
					m.customMarket.Focus()
				}
			}
			return m, nil
		case 2:
			if m.modelCursor < len(m.models)-1 {
				m.modelCursor++
				m.svc.SetModel(m.models[m.modelCursor])
			}
			return m, nil
		}

	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "down"))) && m.searchFocus == 3:
		if msg.String() == "up" && m.filterCursor > 0 {
			m.filterCursor--
		}
		if msg.String() == "down" && m.filterCursor < 3 {
			m.filterCursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys(" "))) && m.searchFocus == 3:
		switch m.filterCursor {
		case 0:
			m.filters.Interest = cycleFilter(m.filters.Interest)
		case 1:
			m.filters.Monetization = cycleFilter(m.filters.Monetization)
		case 2:
			m.filters.Competition = cycleFilter(m.filters.Competition)
		case 3:
			m.filters.Sustainability = cycleFilter(m.filters.Sustainability)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+d"))):
		m.directMode = !m.directMode
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+r"))):
		// Back to previous results, if any
		if m.session.Result() != nil {
			m.currentView = viewResults
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		return m.startSearch(false)

	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.quitting = true
		return m, tea.Quit
	}

	// Everything else types into the focused field
	var cmd tea.Cmd
	switch m.searchFocus {
	case 0:
		m.ideaInput, cmd = m.ideaInput.Update(msg)
	case 1:
		if m.marketCursor == len(markets)-1 {
			m.customMarket, cmd = m.customMarket.Update(msg)
		}
	}
	return m, cmd
}

// startSearch validates preconditions and dispatches a generation.
// Exclusions come from what is currently on screen, so a load-more
// never repeats a niche the user is already looking at.
func (m Model) startSearch(loadMore bool) (tea.Model, tea.Cmd) {
	idea := strings.TrimSpace(m.ideaInput.Value())
	if idea == "" {
		m.blockingError = "Enter a channel idea first."
		return m, nil
	}

	if m.market() == "" {
		m.blockingError = "Pick a market from the list or type a custom one."
		return m, nil
	}

	if !m.credentialGate() {
		return m, nil
	}

	if !m.session.Begin(searchKey) {
		return m, nil
	}

	req := provider.GenerationRequest{
		Idea:    idea,
		Market:  m.market(),
		Filters: m.filters,
	}
	if loadMore {
		req.Exclude = m.session.NicheExclusions()
	}

	m.loading = true
	return m, analyzeNiches(m.svc, m.chatHistory, req, m.directMode, loadMore)
}

// handleResultsKeys handles keys in the results list
func (m Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result := m.session.Result()
	count := 0
	if result != nil {
		count = len(result.Niches)
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("q"))):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.nicheCursor > 0 {
			m.nicheCursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.nicheCursor < count-1 {
			m.nicheCursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if result != nil && m.nicheCursor < count {
			m.detailName = result.Niches[m.nicheCursor].NicheName.Original
			m.ideaCursor = 0
			m.currentView = viewDetail
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("m"))):
		return m.startSearch(true)

	case key.Matches(msg, key.NewBinding(key.WithKeys("s"))):
		if result != nil && m.nicheCursor < count {
			return m, saveNiche(m.libraryRepo, result.Niches[m.nicheCursor])
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("n", "esc"))):
		m.currentView = viewSearch
		m.ideaInput.Focus()
		m.searchFocus = 0
		return m, nil
	}

	return m, nil
}

// handleDetailKeys handles keys in the niche detail view
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	niche, ok := m.currentNiche()
	if !ok {
		m.currentView = viewResults
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.currentView = m.previousDetailView()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.ideaCursor > 0 {
			m.ideaCursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.ideaCursor < len(niche.VideoIdeas)-1 {
			m.ideaCursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("v"))):
		// More video ideas for this niche only
		if !m.credentialGate() {
			return m, nil
		}
		if !m.session.Begin(session.VideoIdeasKey(niche.NicheName.Original)) {
			return m, nil
		}
		req := provider.GenerationRequest{
			Market:  m.market(),
			Exclude: m.session.VideoIdeaExclusions(niche.NicheName.Original),
		}
		m.loading = true
		return m, generateVideoIdeas(m.svc, m.chatHistory, niche, req)

	case key.Matches(msg, key.NewBinding(key.WithKeys("p"))):
		// Open the content plan, generating it on first use
		if plan, ok := m.session.ContentPlan(niche.NicheName.Original); ok && len(plan.ContentIdeas) > 0 {
			m.planName = niche.NicheName.Original
			m.currentView = viewContentPlan
			return m, nil
		}
		if !m.credentialGate() {
			return m, nil
		}
		if !m.session.Begin(session.ContentPlanKey(niche.NicheName.Original)) {
			return m, nil
		}
		req := provider.GenerationRequest{Market: m.market()}
		m.loading = true
		return m, generateContentPlan(m.svc, m.chatHistory, niche, req, false)

	case key.Matches(msg, key.NewBinding(key.WithKeys("s"))):
		return m, saveNiche(m.libraryRepo, niche)

	case key.Matches(msg, key.NewBinding(key.WithKeys("e"))):
		path := exportPath("video_ideas", niche.NicheName.Translated, "txt")
		return m, exportText(export.VideoIdeasToText(niche), path)
	}

	return m, nil
}

// previousDetailView decides where esc returns to from a detail view
func (m Model) previousDetailView() view {
	if m.previousView == viewLibrary {
		return viewLibrary
	}
	return viewResults
}

// handleContentPlanKeys handles keys in the content plan view
func (m Model) handleContentPlanKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	niche, ok := m.session.Niche(m.planName)
	plan, hasPlan := m.session.ContentPlan(m.planName)

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.currentView = viewDetail
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.planCursor > 0 {
			m.planCursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if hasPlan && m.planCursor < len(plan.ContentIdeas)-1 {
			m.planCursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("m"))):
		if !ok {
			return m, nil
		}
		if !m.credentialGate() {
			return m, nil
		}
		if !m.session.Begin(session.ContentPlanKey(m.planName)) {
			return m, nil
		}
		req := provider.GenerationRequest{
			Market:  m.market(),
			Exclude: m.session.ContentPlanExclusions(m.planName),
		}
		m.loading = true
		return m, generateContentPlan(m.svc, m.chatHistory, niche, req, true)

	case key.Matches(msg, key.NewBinding(key.WithKeys("e"))):
		if hasPlan {
			path := exportPath("content_plan", m.planName, "txt")
			return m, exportText(export.ContentPlanToText(m.planName, *plan), path)
		}
		return m, nil
	}

	return m, nil
}

// handleKeyManagerKeys handles keys in the key manager
func (m Model) handleKeyManagerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pool, err := m.svc.PoolFor(m.keyProvider)
	if err != nil {
		m.errorMessage = err.Error()
		return m, nil
	}

	if m.keyEditing {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			m.keyEditing = false
			m.keyInput.SetValue("")
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			value := strings.TrimSpace(m.keyInput.Value())
			if value == "" {
				m.errorMessage = "Key cannot be empty"
				return m, nil
			}
			pool.Add(value)
			m.keyEditing = false
			m.keyInput.SetValue("")
			m.statusMessage = "✓ Key added"
			return m, nil
		}

		var cmd tea.Cmd
		m.keyInput, cmd = m.keyInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "q"))):
		m.currentView = m.previousView
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
		if m.keyProvider == domain.ProviderGemini {
			m.keyProvider = domain.ProviderOpenAI
		} else {
			m.keyProvider = domain.ProviderGemini
		}
		m.keyCursor = 0
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.keyCursor > 0 {
			m.keyCursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.keyCursor < pool.Len()-1 {
			m.keyCursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("a"))):
		m.keyEditing = true
		m.keyInput.Focus()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("d"))):
		pool.Remove(m.keyCursor)
		if m.keyCursor >= pool.Len() && m.keyCursor > 0 {
			m.keyCursor--
		}
		m.statusMessage = "✓ Key removed"
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("v"))):
		if pool.Len() == 0 {
			m.errorMessage = "No keys to validate"
			return m, nil
		}
		// Flip to checking right away so the list shows spinners
		pool.MarkAllChecking()
		m.loading = true
		return m, validateKeys(m.svc, m.keyProvider)
	}

	return m, nil
}

// handleLibraryKeys handles keys in the saved niche library
func (m Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "q"))):
		m.currentView = m.previousView
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.libraryCursor > 0 {
			m.libraryCursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.libraryCursor < len(m.library)-1 {
			m.libraryCursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if m.libraryCursor < len(m.library) {
			m.detailName = m.library[m.libraryCursor].NicheName.Original
			m.ideaCursor = 0
			m.previousView = viewLibrary
			m.currentView = viewDetail
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("d"))):
		if m.libraryCursor < len(m.library) {
			return m, deleteNiche(m.libraryRepo, m.library[m.libraryCursor].NicheName.Original)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("D"))):
		return m, deleteAllNiches(m.libraryRepo)

	case key.Matches(msg, key.NewBinding(key.WithKeys("x"))):
		if len(m.library) == 0 {
			m.errorMessage = "Library is empty"
			return m, nil
		}
		path := exportPath("niche_library", "", "csv")
		m.loading = true
		return m, exportLibraryCSV(m.library, path)
	}

	return m, nil
}

// handlePasswordKeys handles the training chat password gate
func (m Model) handlePasswordKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.currentView = m.previousView
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		entered := m.passwordInput.Value()
		if entered == "" {
			m.errorMessage = "Password cannot be empty"
			return m, nil
		}

		if m.settingPassword {
			m.trainingPassword = entered
			m.chatUnlocked = true
			m.currentView = viewChat
			m.chatInput.Focus()
			m.statusMessage = "✓ Training password set"
			return m, saveSetting(m.settingsRepo, repository.SettingTrainingPassword, entered)
		}

		if entered != m.trainingPassword {
			m.errorMessage = "Wrong password"
			m.passwordInput.SetValue("")
			return m, nil
		}

		m.chatUnlocked = true
		m.currentView = viewChat
		m.chatInput.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.passwordInput, cmd = m.passwordInput.Update(msg)
	return m, cmd
}

// handleChatKeys handles keys in the training chat
func (m Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.currentView = m.previousView
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" || m.loading {
			return m, nil
		}
		if !m.credentialGate() {
			return m, nil
		}

		history := append([]domain.ChatMessage(nil), m.chatHistory...)
		m.chatHistory = append(m.chatHistory, domain.ChatMessage{Role: domain.RoleUser, Text: text})
		m.chatInput.SetValue("")
		m.loading = true
		return m, sendChatMessage(m.svc, history, text)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// updateSearchFocus moves focus between the search form fields
func (m *Model) updateSearchFocus() {
	m.ideaInput.Blur()
	m.customMarket.Blur()

	switch m.searchFocus {
	case 0:
		m.ideaInput.Focus()
	case 1:
		if m.marketCursor == len(markets)-1 {
			m.customMarket.Focus()
		}
	}
}

// exportPath builds a timestamped file name in the working directory
func exportPath(prefix, name, ext string) string {
	stamp := time.Now().Format("20060102_150405")
	if name != "" {
		name = "_" + strings.ReplaceAll(strings.ToLower(name), " ", "_")
	}
	return fmt.Sprintf("%s%s_%s.%s", prefix, name, stamp, ext)
}
