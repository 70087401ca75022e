package finder

import "github.com/elsanchez/niche-finder/internal/domain"

// Message types for async operations

type analysisDoneMsg struct {
	result   domain.AnalysisResult
	loadMore bool
	err      error
}

type videoIdeasDoneMsg struct {
	nicheName string
	ideas     []domain.VideoIdea
	err       error
}

type contentPlanDoneMsg struct {
	nicheName string
	plan      domain.ContentPlanResult
	loadMore  bool
	err       error
}

type chatDoneMsg struct {
	reply string
	err   error
}

type chatHistoryLoadedMsg struct {
	history []domain.ChatMessage
	err     error
}

type validationDoneMsg struct {
	provider domain.Provider
	statuses []domain.CredentialStatus
	err      error
}

type libraryLoadedMsg struct {
	niches []domain.Niche
	err    error
}

type librarySavedMsg struct {
	nicheName string
	err       error
}

type libraryDeletedMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

type settingsLoadedMsg struct {
	trainingPassword string
	theme            string
	err              error
}

type settingSavedMsg struct {
	err error
}
