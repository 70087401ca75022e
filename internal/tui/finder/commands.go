package finder

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/export"
	"github.com/elsanchez/niche-finder/internal/generator"
	"github.com/elsanchez/niche-finder/internal/provider"
	"github.com/elsanchez/niche-finder/internal/repository"
)

const generationTimeout = 3 * time.Minute

// Async commands that return tea.Msg

func analyzeNiches(svc *generator.Service, history []domain.ChatMessage, req provider.GenerationRequest, direct, loadMore bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		var result domain.AnalysisResult
		var err error

		if direct {
			result, err = svc.AnalyzeDirect(ctx, history, req)
		} else {
			result, err = svc.AnalyzeNiches(ctx, history, req)
		}

		return analysisDoneMsg{result: result, loadMore: loadMore, err: err}
	}
}

func generateVideoIdeas(svc *generator.Service, history []domain.ChatMessage, niche domain.Niche, req provider.GenerationRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		result, err := svc.MoreVideoIdeas(ctx, history, niche, req)
		return videoIdeasDoneMsg{nicheName: niche.NicheName.Original, ideas: result.VideoIdeas, err: err}
	}
}

func generateContentPlan(svc *generator.Service, history []domain.ChatMessage, niche domain.Niche, req provider.GenerationRequest, loadMore bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		plan, err := svc.ContentPlan(ctx, history, niche, req)
		return contentPlanDoneMsg{nicheName: niche.NicheName.Original, plan: plan, loadMore: loadMore, err: err}
	}
}

func sendChatMessage(svc *generator.Service, history []domain.ChatMessage, prompt string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		reply, err := svc.Chat(ctx, history, prompt)
		return chatDoneMsg{reply: reply, err: err}
	}
}

func validateKeys(svc *generator.Service, p domain.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		statuses, err := svc.ValidateKeys(ctx, p)
		return validationDoneMsg{provider: p, statuses: statuses, err: err}
	}
}

func loadChatHistory(repo repository.ChatRepository) tea.Cmd {
	return func() tea.Msg {
		history, err := repo.GetHistory(context.Background())
		if err == nil && len(history) == 0 {
			// First run: the chat starts from the seeded history
			history = domain.DefaultTrainingHistory()
			if saveErr := repo.SaveHistory(context.Background(), history); saveErr != nil {
				slog.Warn("seed training history", "error", saveErr)
			}
		}
		return chatHistoryLoadedMsg{history: history, err: err}
	}
}

func saveChatHistory(repo repository.ChatRepository, history []domain.ChatMessage) tea.Cmd {
	return func() tea.Msg {
		err := repo.SaveHistory(context.Background(), history)
		if err != nil {
			return errToastMsg{err: err}
		}
		return nil
	}
}

func loadLibrary(repo repository.LibraryRepository) tea.Cmd {
	return func() tea.Msg {
		niches, err := repo.GetAll(context.Background())
		return libraryLoadedMsg{niches: niches, err: err}
	}
}

func saveNiche(repo repository.LibraryRepository, niche domain.Niche) tea.Cmd {
	return func() tea.Msg {
		err := repo.Save(context.Background(), niche)
		return librarySavedMsg{nicheName: niche.NicheName.Translated, err: err}
	}
}

func deleteNiche(repo repository.LibraryRepository, name string) tea.Cmd {
	return func() tea.Msg {
		err := repo.Delete(context.Background(), name)
		return libraryDeletedMsg{err: err}
	}
}

func deleteAllNiches(repo repository.LibraryRepository) tea.Cmd {
	return func() tea.Msg {
		err := repo.DeleteAll(context.Background())
		return libraryDeletedMsg{err: err}
	}
}

func exportLibraryCSV(niches []domain.Niche, path string) tea.Cmd {
	return func() tea.Msg {
		err := export.WriteNichesCSV(niches, path)
		return exportDoneMsg{path: path, err: err}
	}
}

func exportText(content, path string) tea.Cmd {
	return func() tea.Msg {
		err := export.WriteText(content, path)
		return exportDoneMsg{path: path, err: err}
	}
}

func loadSettings(repo repository.SettingsRepository) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		password, err := repo.Get(ctx, repository.SettingTrainingPassword)
		if err != nil {
			return settingsLoadedMsg{err: err}
		}

		theme, err := repo.Get(ctx, repository.SettingTheme)
		if err != nil {
			return settingsLoadedMsg{err: err}
		}

		return settingsLoadedMsg{trainingPassword: password, theme: theme}
	}
}

func saveSetting(repo repository.SettingsRepository, key, value string) tea.Cmd {
	return func() tea.Msg {
		err := repo.Set(context.Background(), key, value)
		return settingSavedMsg{err: err}
	}
}

// errToastMsg wraps an error for the transient status line
type errToastMsg struct {
	err error
}
