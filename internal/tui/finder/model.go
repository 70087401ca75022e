package finder

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/generator"
	"github.com/elsanchez/niche-finder/internal/repository"
	"github.com/elsanchez/niche-finder/internal/session"
)

// view represents different screens in the TUI
type view int

const (
	viewSearch view = iota
	viewResults
	viewDetail
	viewContentPlan
	viewKeys
	viewLibrary
	viewChatPassword
	viewChat
	viewHelp
)

// Built-in target markets; the last entry switches to free-text input
var markets = []string{
	"Global (English)",
	"United States",
	"Latin America (Spanish)",
	"Brazil (Portuguese)",
	"Vietnam (Vietnamese)",
	"Custom...",
}

// Model is the Bubbletea model for the niche finder
type Model struct {
	// Navigation
	currentView  view
	previousView view
	width        int
	height       int
	quitting     bool

	// Dependencies
	svc          *generator.Service
	session      *session.Session
	libraryRepo  repository.LibraryRepository
	chatRepo     repository.ChatRepository
	settingsRepo repository.SettingsRepository
	models       []string

	// Search form
	ideaInput        textinput.Model
	customMarket     textinput.Model
	marketCursor     int
	modelCursor      int
	searchFocus      int // 0 idea, 1 market, 2 model, 3 filters
	filterCursor     int
	filters          domain.FilterSet
	directMode       bool

	// Results / detail
	nicheCursor int
	ideaCursor  int
	detailName  string // original name of the niche being inspected

	// Content plan
	planCursor int
	planName   string

	// Key manager
	keyProvider  domain.Provider
	keyCursor    int
	keyInput     textinput.Model
	keyEditing   bool

	// Library
	library       []domain.Niche
	libraryCursor int

	// Training chat
	chatInput        textinput.Model
	passwordInput    textinput.Model
	chatHistory      []domain.ChatMessage
	trainingPassword string
	chatUnlocked     bool
	settingPassword  bool // first run: the entered password becomes the gate

	// Theme
	theme string

	// UI state
	spinner       spinner.Model
	loading       bool
	statusMessage string
	errorMessage  string
	blockingError string // credential exhaustion; dismissed explicitly
}

// NewModel creates the niche finder TUI model
func NewModel(svc *generator.Service, libraryRepo repository.LibraryRepository, chatRepo repository.ChatRepository, settingsRepo repository.SettingsRepository, models []string) Model {
	ideaInput := textinput.New()
	ideaInput.Placeholder = "Describe a channel idea or topic"
	ideaInput.Focus()
	ideaInput.CharLimit = 200
	ideaInput.Width = 60

	customMarket := textinput.New()
	customMarket.Placeholder = "Market, e.g. Japan (Japanese)"
	customMarket.CharLimit = 80
	customMarket.Width = 40

	keyInput := textinput.New()
	keyInput.Placeholder = "Paste an API key"
	keyInput.CharLimit = 256
	keyInput.Width = 60

	chatInput := textinput.New()
	chatInput.Placeholder = "Tell the model how to think about niches"
	chatInput.CharLimit = 500
	chatInput.Width = 60

	passwordInput := textinput.New()
	passwordInput.Placeholder = "Password"
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.CharLimit = 64
	passwordInput.Width = 30

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	modelCursor := 0
	for i, m := range models {
		if m == svc.Model() {
			modelCursor = i
			break
		}
	}

	return Model{
		currentView:   viewSearch,
		svc:           svc,
		session:       session.New(),
		libraryRepo:   libraryRepo,
		chatRepo:      chatRepo,
		settingsRepo:  settingsRepo,
		models:        models,
		modelCursor:   modelCursor,
		ideaInput:     ideaInput,
		customMarket:  customMarket,
		keyInput:      keyInput,
		chatInput:     chatInput,
		passwordInput: passwordInput,
		filters:       domain.DefaultFilters(),
		keyProvider:   domain.ProviderGemini,
		spinner:       s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadSettings(m.settingsRepo),
		loadChatHistory(m.chatRepo),
		m.spinner.Tick,
	)
}

// market returns the currently selected market label
func (m Model) market() string {
	if m.marketCursor == len(markets)-1 {
		return m.customMarket.Value()
	}
	return markets[m.marketCursor]
}

// currentNiche returns the niche being inspected in the detail view.
// Results live in the session; saved niches come from the library list.
func (m Model) currentNiche() (domain.Niche, bool) {
	if n, ok := m.session.Niche(m.detailName); ok {
		return n, true
	}
	for _, n := range m.library {
		if n.NicheName.Original == m.detailName {
			return n, true
		}
	}
	return domain.Niche{}, false
}

// cycleFilter advances one filter level: all -> low -> medium -> high
func cycleFilter(level domain.FilterLevel) domain.FilterLevel {
	switch level {
	case domain.FilterAll:
		return domain.FilterLow
	case domain.FilterLow:
		return domain.FilterMedium
	case domain.FilterMedium:
		return domain.FilterHigh
	default:
		return domain.FilterAll
	}
}
