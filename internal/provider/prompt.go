package provider

import (
	"fmt"
	"strings"

	"github.com/elsanchez/niche-finder/internal/domain"
)

// DefaultCount is the number of items requested when the caller does
// not specify one.
const DefaultCount = 5

// GenerationRequest describes what to ask for, independent of the
// provider that ends up serving it. Exclude must be derived from the
// items currently displayed, never from a cache, so a load-more call
// cannot regenerate a name already on screen.
type GenerationRequest struct {
	Idea    string
	Market  string
	Count   int      // items to generate; 0 means DefaultCount
	Exclude []string // names/titles already shown
	Filters domain.FilterSet
}

func (r GenerationRequest) count() int {
	if r.Count <= 0 {
		return DefaultCount
	}
	return r.Count
}

const nicheSchema = `{
  "niches": [
    {
      "niche_name": {"original": "name in the market's language", "translated": "English translation"},
      "description": "what the niche covers and why it works",
      "audience_demographics": "age range, gender split, interests",
      "analysis": {
        "interest_level": {"score": 1-10, "explanation": "..."},
        "monetization_potential": {"score": 1-10, "rpm_estimate": "e.g. $2-$8", "explanation": "..."},
        "competition_level": {"score": 1-10, "explanation": "..."},
        "sustainability": {"score": 1-10, "explanation": "..."}
      },
      "content_strategy": "posting cadence and format advice",
      "video_ideas": [
        {"title": {"original": "...", "translated": "..."}, "draft_content": "2-3 sentence outline"}
      ]
    }
  ]
}`

// BuildNicheAnalysisPrompt asks for related niches around an idea.
func BuildNicheAnalysisPrompt(req GenerationRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a YouTube niche research analyst. Suggest exactly %d promising YouTube content niches related to the idea %q, for the %q market.\n\n",
		req.count(), req.Idea, req.Market)

	writeFilterConstraints(&sb, req.Filters)
	writeExclusions(&sb, "niches", req.Exclude)

	sb.WriteString("Each niche must include exactly 5 video ideas.\n")
	sb.WriteString("Respond with JSON only, matching this schema:\n")
	sb.WriteString(nicheSchema)
	return sb.String()
}

// BuildDirectAnalysisPrompt analyzes one keyword as-is instead of
// exploring related niches. Count and filters do not apply here.
func BuildDirectAnalysisPrompt(req GenerationRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a YouTube niche research analyst. Analyze the exact keyword %q as a YouTube niche for the %q market. Do not suggest related topics; evaluate this keyword itself.\n\n",
		req.Idea, req.Market)

	sb.WriteString("Return a single niche with exactly 5 video ideas.\n")
	sb.WriteString("Respond with JSON only, matching this schema:\n")
	sb.WriteString(nicheSchema)
	return sb.String()
}

// BuildVideoIdeasPrompt asks for more video ideas for one niche.
func BuildVideoIdeasPrompt(niche domain.Niche, req GenerationRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate %d new YouTube video ideas for the niche %q (%s).\n",
		req.count(), niche.NicheName.Original, niche.Description)
	fmt.Fprintf(&sb, "Audience: %s\n\n", niche.AudienceDemographics)

	writeExclusions(&sb, "titles", req.Exclude)

	sb.WriteString("Respond with JSON only, matching this schema:\n")
	sb.WriteString(`{"video_ideas": [{"title": {"original": "...", "translated": "..."}, "draft_content": "2-3 sentence outline"}]}`)
	return sb.String()
}

// BuildContentPlanPrompt asks for detailed script-level content ideas
// for one niche.
func BuildContentPlanPrompt(niche domain.Niche, req GenerationRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Create %d detailed video content plans for the YouTube niche %q (%s).\n",
		req.count(), niche.NicheName.Original, niche.Description)
	fmt.Fprintf(&sb, "Content strategy for the niche: %s\n\n", niche.ContentStrategy)

	writeExclusions(&sb, "titles", req.Exclude)

	sb.WriteString("Each plan needs a hook, 3-5 main points, visual suggestions and a call to action.\n")
	sb.WriteString("Respond with JSON only, matching this schema:\n")
	sb.WriteString(`{"content_ideas": [{"title": {"original": "...", "translated": "..."}, "hook": "...", "main_points": ["..."], "visual_suggestions": "...", "call_to_action": "..."}]}`)
	return sb.String()
}

func writeFilterConstraints(sb *strings.Builder, filters domain.FilterSet) {
	constraints := make([]string, 0, 4)
	if filters.Interest != domain.FilterAll && filters.Interest != "" {
		constraints = append(constraints, fmt.Sprintf("audience interest level: %s", filters.Interest))
	}
	if filters.Monetization != domain.FilterAll && filters.Monetization != "" {
		constraints = append(constraints, fmt.Sprintf("monetization potential: %s", filters.Monetization))
	}
	if filters.Competition != domain.FilterAll && filters.Competition != "" {
		constraints = append(constraints, fmt.Sprintf("competition level: %s", filters.Competition))
	}
	if filters.Sustainability != domain.FilterAll && filters.Sustainability != "" {
		constraints = append(constraints, fmt.Sprintf("sustainability: %s", filters.Sustainability))
	}

	if len(constraints) == 0 {
		return
	}
	sb.WriteString("Only include niches matching these constraints:\n")
	for _, c := range constraints {
		sb.WriteString("- " + c + "\n")
	}
	sb.WriteString("\n")
}

func writeExclusions(sb *strings.Builder, what string, exclude []string) {
	if len(exclude) == 0 {
		return
	}
	fmt.Fprintf(sb, "Do NOT repeat any of these %s already shown to the user:\n", what)
	for _, name := range exclude {
		sb.WriteString("- " + name + "\n")
	}
	sb.WriteString("\n")
}
