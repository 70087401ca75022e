package domain

// BilingualText guarda un texto en el idioma del mercado y su traducción
type BilingualText struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// Metric es una puntuación 1-10 con su explicación
type Metric struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// MonetizationMetric agrega el RPM estimado a la métrica base
type MonetizationMetric struct {
	Score       int    `json:"score"`
	RPMEstimate string `json:"rpm_estimate"`
	Explanation string `json:"explanation"`
}

// AnalysisMetrics son las cuatro dimensiones de evaluación de un niche
type AnalysisMetrics struct {
	InterestLevel         Metric             `json:"interest_level"`
	MonetizationPotential MonetizationMetric `json:"monetization_potential"`
	CompetitionLevel      Metric             `json:"competition_level"`
	Sustainability        Metric             `json:"sustainability"`
}

// VideoIdea es una idea de video con borrador de contenido
type VideoIdea struct {
	Title        BilingualText `json:"title"`
	DraftContent string        `json:"draft_content"`
}

// Niche representa un nicho de YouTube analizado
type Niche struct {
	NicheName            BilingualText   `json:"niche_name"`
	Description          string          `json:"description"`
	AudienceDemographics string          `json:"audience_demographics"`
	Analysis             AnalysisMetrics `json:"analysis"`
	ContentStrategy      string          `json:"content_strategy"`
	VideoIdeas           []VideoIdea     `json:"video_ideas"`
}

// AnalysisResult es el payload estructurado que devuelve el modelo
type AnalysisResult struct {
	Niches []Niche `json:"niches"`
}

// ContentIdea es un guion detallado dentro de un plan de contenido
type ContentIdea struct {
	Title             BilingualText `json:"title"`
	Hook              string        `json:"hook"`
	MainPoints        []string      `json:"main_points"`
	VisualSuggestions string        `json:"visual_suggestions"`
	CallToAction      string        `json:"call_to_action"`
}

// ContentPlanResult es el plan de contenido de un niche
type ContentPlanResult struct {
	ContentIdeas []ContentIdea `json:"content_ideas"`
}

// VideoIdeasResult es la respuesta de "más ideas de video"
type VideoIdeasResult struct {
	VideoIdeas []VideoIdea `json:"video_ideas"`
}

// AsVideoIdea proyecta una idea detallada a una idea simple de video.
// El hook se usa como resumen del borrador.
func (c ContentIdea) AsVideoIdea() VideoIdea {
	return VideoIdea{
		Title:        c.Title,
		DraftContent: c.Hook,
	}
}

// FilterLevel es el nivel de filtrado para las métricas de análisis
type FilterLevel string

const (
	FilterAll    FilterLevel = "all"
	FilterLow    FilterLevel = "low"
	FilterMedium FilterLevel = "medium"
	FilterHigh   FilterLevel = "high"
)

// FilterSet agrupa los cuatro filtros de análisis
type FilterSet struct {
	Interest       FilterLevel
	Monetization   FilterLevel
	Competition    FilterLevel
	Sustainability FilterLevel
}

// DefaultFilters devuelve todos los filtros en "all"
func DefaultFilters() FilterSet {
	return FilterSet{
		Interest:       FilterAll,
		Monetization:   FilterAll,
		Competition:    FilterAll,
		Sustainability: FilterAll,
	}
}
