// Package session holds the accumulating result state behind the UI:
// the paginated niche list, per-niche video ideas and content plans,
// and the in-flight guard that prevents duplicate concurrent requests
// for the same target.
package session

import (
	"github.com/elsanchez/niche-finder/internal/domain"
)

// Append concatenates newly generated items after the existing ones,
// preserving order. It never deduplicates: exclusion happens upstream
// in the request prompt, and silently filtering here would hide a
// model that ignores the exclusion list.
func Append[T any](existing, incoming []T) []T {
	merged := make([]T, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	merged = append(merged, incoming...)
	return merged
}

// Session is the result state for one run of the app. All mutation
// happens on the UI event loop; commands only read snapshots.
type Session struct {
	result       *domain.AnalysisResult
	depth        int
	contentPlans map[string]*domain.ContentPlanResult
	inflight     map[string]struct{}
}

func New() *Session {
	return &Session{
		contentPlans: make(map[string]*domain.ContentPlanResult),
		inflight:     make(map[string]struct{}),
	}
}

// NewSearch replaces the niche collection wholesale and resets depth.
func (s *Session) NewSearch(result domain.AnalysisResult) {
	s.result = &result
	s.depth = 1
}

// LoadMore appends the new niches after the existing ones.
func (s *Session) LoadMore(result domain.AnalysisResult) {
	if s.result == nil {
		s.NewSearch(result)
		return
	}
	s.result.Niches = Append(s.result.Niches, result.Niches)
	s.depth++
}

// Result returns the current analysis result, or nil before the first
// search.
func (s *Session) Result() *domain.AnalysisResult {
	return s.result
}

// Depth is how many generation rounds produced the current niche list.
func (s *Session) Depth() int {
	return s.depth
}

// NicheExclusions lists the names of every niche currently displayed.
// Computed before a load-more call is dispatched, so items produced by
// that call are never in their own exclusion list.
func (s *Session) NicheExclusions() []string {
	if s.result == nil {
		return nil
	}
	names := make([]string, 0, len(s.result.Niches))
	for _, n := range s.result.Niches {
		names = append(names, n.NicheName.Original)
	}
	return names
}

// Niche finds a displayed niche by its original name.
func (s *Session) Niche(name string) (domain.Niche, bool) {
	if s.result == nil {
		return domain.Niche{}, false
	}
	for _, n := range s.result.Niches {
		if n.NicheName.Original == name {
			return n, true
		}
	}
	return domain.Niche{}, false
}

// AddVideoIdeas appends ideas to the named niche's list.
func (s *Session) AddVideoIdeas(nicheName string, ideas []domain.VideoIdea) {
	if s.result == nil {
		return
	}
	for i := range s.result.Niches {
		if s.result.Niches[i].NicheName.Original == nicheName {
			s.result.Niches[i].VideoIdeas = Append(s.result.Niches[i].VideoIdeas, ideas)
			return
		}
	}
}

// VideoIdeaExclusions lists the titles already shown for a niche.
func (s *Session) VideoIdeaExclusions(nicheName string) []string {
	niche, ok := s.Niche(nicheName)
	if !ok {
		return nil
	}
	titles := make([]string, 0, len(niche.VideoIdeas))
	for _, idea := range niche.VideoIdeas {
		titles = append(titles, idea.Title.Original)
	}
	return titles
}

// SetContentPlan stores the initial content plan for a niche.
func (s *Session) SetContentPlan(nicheName string, plan domain.ContentPlanResult) {
	s.contentPlans[nicheName] = &plan
}

// ContentPlan returns the cached plan for a niche, if any.
func (s *Session) ContentPlan(nicheName string) (*domain.ContentPlanResult, bool) {
	plan, ok := s.contentPlans[nicheName]
	return plan, ok
}

// AppendContentPlan merges new content ideas into the niche's plan and
// back-fills the niche's video-idea list with their projections (the
// hook becomes the draft-content summary).
func (s *Session) AppendContentPlan(nicheName string, ideas []domain.ContentIdea) {
	plan, ok := s.contentPlans[nicheName]
	if !ok {
		s.contentPlans[nicheName] = &domain.ContentPlanResult{ContentIdeas: ideas}
	} else {
		plan.ContentIdeas = Append(plan.ContentIdeas, ideas)
	}

	projected := make([]domain.VideoIdea, 0, len(ideas))
	for _, idea := range ideas {
		projected = append(projected, idea.AsVideoIdea())
	}
	s.AddVideoIdeas(nicheName, projected)
}

// ContentPlanExclusions lists the content-idea titles already in the
// niche's plan.
func (s *Session) ContentPlanExclusions(nicheName string) []string {
	plan, ok := s.contentPlans[nicheName]
	if !ok {
		return nil
	}
	titles := make([]string, 0, len(plan.ContentIdeas))
	for _, idea := range plan.ContentIdeas {
		titles = append(titles, idea.Title.Original)
	}
	return titles
}

// Begin reserves an in-flight slot for the given target key. Returns
// false if a request for that target is already pending, making a
// second trigger a no-op. Distinct targets never block each other.
func (s *Session) Begin(key string) bool {
	if _, pending := s.inflight[key]; pending {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

// End releases the in-flight slot for the target key.
func (s *Session) End(key string) {
	delete(s.inflight, key)
}

// InFlight reports whether a request for the target key is pending.
func (s *Session) InFlight(key string) bool {
	_, pending := s.inflight[key]
	return pending
}

// In-flight target keys. One namespace per action kind so "video ideas
// for Cooking" and "content plan for Cooking" can run concurrently.
func VideoIdeasKey(nicheName string) string { return "video-ideas:" + nicheName }
func ContentPlanKey(nicheName string) string { return "content-plan:" + nicheName }
