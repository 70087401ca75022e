package session

import (
	"reflect"
	"testing"

	"github.com/elsanchez/niche-finder/internal/domain"
)

func niche(name string, ideas ...string) domain.Niche {
	n := domain.Niche{NicheName: domain.BilingualText{Original: name, Translated: name}}
	for _, title := range ideas {
		n.VideoIdeas = append(n.VideoIdeas, domain.VideoIdea{
			Title: domain.BilingualText{Original: title, Translated: title},
		})
	}
	return n
}

func nicheNames(result *domain.AnalysisResult) []string {
	var names []string
	for _, n := range result.Niches {
		names = append(names, n.NicheName.Original)
	}
	return names
}

func TestAppend_NoImplicitDedup(t *testing.T) {
	existing := []domain.Niche{niche("X")}
	incoming := []domain.Niche{niche("X"), niche("Y")}

	merged := Append(existing, incoming)

	// A duplicate from upstream stays visible: three entries, not two
	got := nicheNames(&domain.AnalysisResult{Niches: merged})
	want := []string{"X", "X", "Y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("merged = %v, want %v", got, want)
	}
}

func TestSession_NewSearchResetsLoadMoreAppends(t *testing.T) {
	s := New()

	s.NewSearch(domain.AnalysisResult{Niches: []domain.Niche{niche("N1"), niche("N2")}})
	if s.Depth() != 1 {
		t.Fatalf("depth after new search = %d, want 1", s.Depth())
	}

	// Exclusion list is computed before the load-more call runs
	exclusions := s.NicheExclusions()
	if !reflect.DeepEqual(exclusions, []string{"N1", "N2"}) {
		t.Errorf("exclusions = %v, want [N1 N2]", exclusions)
	}

	s.LoadMore(domain.AnalysisResult{Niches: []domain.Niche{niche("N3"), niche("N4")}})

	got := nicheNames(s.Result())
	if !reflect.DeepEqual(got, []string{"N1", "N2", "N3", "N4"}) {
		t.Errorf("after load more = %v", got)
	}
	if s.Depth() != 2 {
		t.Errorf("depth = %d, want 2", s.Depth())
	}

	// A fresh search replaces everything and restarts depth
	s.NewSearch(domain.AnalysisResult{Niches: []domain.Niche{niche("M1")}})
	if got := nicheNames(s.Result()); !reflect.DeepEqual(got, []string{"M1"}) {
		t.Errorf("after new search = %v, want [M1]", got)
	}
	if s.Depth() != 1 {
		t.Errorf("depth after new search = %d, want 1", s.Depth())
	}
}

func TestSession_AddVideoIdeasTargetsOneNiche(t *testing.T) {
	s := New()
	s.NewSearch(domain.AnalysisResult{Niches: []domain.Niche{
		niche("Cooking", "Pho at home"),
		niche("Gardening"),
	}})

	s.AddVideoIdeas("Cooking", []domain.VideoIdea{
		{Title: domain.BilingualText{Original: "Banh mi basics"}},
	})

	cooking, _ := s.Niche("Cooking")
	if len(cooking.VideoIdeas) != 2 {
		t.Errorf("cooking ideas = %d, want 2", len(cooking.VideoIdeas))
	}
	gardening, _ := s.Niche("Gardening")
	if len(gardening.VideoIdeas) != 0 {
		t.Errorf("gardening ideas = %d, want 0", len(gardening.VideoIdeas))
	}

	exclusions := s.VideoIdeaExclusions("Cooking")
	if !reflect.DeepEqual(exclusions, []string{"Pho at home", "Banh mi basics"}) {
		t.Errorf("video idea exclusions = %v", exclusions)
	}
}

func TestSession_AppendContentPlanBackfillsVideoIdeas(t *testing.T) {
	s := New()
	s.NewSearch(domain.AnalysisResult{Niches: []domain.Niche{niche("Cooking")}})
	s.SetContentPlan("Cooking", domain.ContentPlanResult{ContentIdeas: []domain.ContentIdea{
		{Title: domain.BilingualText{Original: "Street food tour"}, Hook: "hook A"},
	}})

	s.AppendContentPlan("Cooking", []domain.ContentIdea{
		{Title: domain.BilingualText{Original: "Night market eats"}, Hook: "hook B"},
	})

	plan, ok := s.ContentPlan("Cooking")
	if !ok || len(plan.ContentIdeas) != 2 {
		t.Fatalf("plan ideas = %d, want 2", len(plan.ContentIdeas))
	}

	// Only the appended ideas project into the video-idea list
	cooking, _ := s.Niche("Cooking")
	if len(cooking.VideoIdeas) != 1 {
		t.Fatalf("video ideas = %d, want 1", len(cooking.VideoIdeas))
	}
	if cooking.VideoIdeas[0].Title.Original != "Night market eats" {
		t.Errorf("backfilled title = %q", cooking.VideoIdeas[0].Title.Original)
	}
	if cooking.VideoIdeas[0].DraftContent != "hook B" {
		t.Errorf("draft content = %q, want the hook text", cooking.VideoIdeas[0].DraftContent)
	}

	exclusions := s.ContentPlanExclusions("Cooking")
	if !reflect.DeepEqual(exclusions, []string{"Street food tour", "Night market eats"}) {
		t.Errorf("plan exclusions = %v", exclusions)
	}
}

func TestSession_InFlightGuard(t *testing.T) {
	s := New()

	if !s.Begin(VideoIdeasKey("Cooking")) {
		t.Fatal("first begin should succeed")
	}
	// Second trigger for the same target is a no-op
	if s.Begin(VideoIdeasKey("Cooking")) {
		t.Error("duplicate begin for the same target should be refused")
	}
	// A different target dispatches normally
	if !s.Begin(VideoIdeasKey("Gardening")) {
		t.Error("different target should not be blocked")
	}
	// Same niche, different action kind: independent targets
	if !s.Begin(ContentPlanKey("Cooking")) {
		t.Error("content plan for the same niche is a distinct target")
	}

	s.End(VideoIdeasKey("Cooking"))
	if !s.Begin(VideoIdeasKey("Cooking")) {
		t.Error("target should be free again after End")
	}
}
