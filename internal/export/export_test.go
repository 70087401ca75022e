package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/elsanchez/niche-finder/internal/domain"
)

func sampleNiche(ideas int) domain.Niche {
	n := domain.Niche{
		NicheName:            domain.BilingualText{Original: "Jardinería urbana", Translated: "Urban Gardening"},
		Description:          "Growing food, in small city apartments",
		AudienceDemographics: "25-40, city dwellers",
		Analysis: domain.AnalysisMetrics{
			InterestLevel:         domain.Metric{Score: 8, Explanation: "steady search volume"},
			MonetizationPotential: domain.MonetizationMetric{Score: 7, RPMEstimate: "$4-8", Explanation: "affiliate friendly"},
			CompetitionLevel:      domain.Metric{Score: 4, Explanation: "few dedicated channels"},
			Sustainability:        domain.Metric{Score: 9, Explanation: "evergreen topic"},
		},
		ContentStrategy: "Weekly tutorials with seasonal series",
	}

	for i := 0; i < ideas; i++ {
		n.VideoIdeas = append(n.VideoIdeas, domain.VideoIdea{
			Title:        domain.BilingualText{Original: "Idea original", Translated: "Idea translated"},
			DraftContent: "draft",
		})
	}

	return n
}

func TestNichesToCSV_Empty(t *testing.T) {
	if _, err := NichesToCSV(nil); err == nil {
		t.Fatal("expected error for empty export")
	}
}

func TestNichesToCSV_Layout(t *testing.T) {
	data, err := NichesToCSV([]domain.Niche{sampleNiche(2)})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	content := string(data)
	if !strings.HasPrefix(content, "\uFEFF") {
		t.Error("expected UTF-8 BOM prefix")
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(content, "\uFEFF")))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	// 14 columnas fijas + 3 por idea, mínimo 5 ideas
	wantCols := 14 + 3*5
	if len(records[0]) != wantCols {
		t.Errorf("expected %d header columns, got %d", wantCols, len(records[0]))
	}

	if records[0][0] != "Niche Name (Original)" {
		t.Errorf("unexpected first header: %s", records[0][0])
	}

	row := records[1]
	if row[0] != "Jardinería urbana" || row[1] != "Urban Gardening" {
		t.Errorf("unexpected name columns: %s / %s", row[0], row[1])
	}

	if row[4] != "8" {
		t.Errorf("expected interest score 8, got %s", row[4])
	}

	if row[7] != "$4-8" {
		t.Errorf("expected rpm estimate, got %s", row[7])
	}

	// Las ideas faltantes se rellenan con celdas vacías
	if row[14] != "Idea original" {
		t.Errorf("expected first idea title, got %s", row[14])
	}
	if row[14+3*2] != "" {
		t.Errorf("expected empty padding cell, got %s", row[14+3*2])
	}
}

func TestNichesToCSV_WidensForManyIdeas(t *testing.T) {
	data, err := NichesToCSV([]domain.Niche{sampleNiche(7)})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\uFEFF")))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	wantCols := 14 + 3*7
	if len(records[0]) != wantCols {
		t.Errorf("expected %d header columns, got %d", wantCols, len(records[0]))
	}
}

func TestNichesToCSV_EscapesCommasAndQuotes(t *testing.T) {
	n := sampleNiche(1)
	n.Description = `has "quotes", commas` + "\nand newlines"

	data, err := NichesToCSV([]domain.Niche{n})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\uFEFF")))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	if records[1][2] != n.Description {
		t.Errorf("description did not round-trip: %q", records[1][2])
	}
}

func TestVideoIdeasToText(t *testing.T) {
	text := VideoIdeasToText(sampleNiche(2))

	if !strings.Contains(text, "Urban Gardening") {
		t.Error("expected niche name in output")
	}
	if !strings.Contains(text, "1. Idea translated") {
		t.Error("expected numbered idea in output")
	}
	if !strings.Contains(text, "(Idea original)") {
		t.Error("expected original title in output")
	}
}

func TestContentPlanToText(t *testing.T) {
	plan := domain.ContentPlanResult{
		ContentIdeas: []domain.ContentIdea{
			{
				Title:             domain.BilingualText{Original: "Gancho", Translated: "Hook video"},
				Hook:              "You are wasting your balcony",
				MainPoints:        []string{"pick containers", "choose crops"},
				VisualSuggestions: "time lapse",
				CallToAction:      "subscribe",
			},
		},
	}

	text := ContentPlanToText("Urban Gardening", plan)

	if !strings.Contains(text, "Content plan for: Urban Gardening") {
		t.Error("expected header in output")
	}
	if !strings.Contains(text, "Hook: You are wasting your balcony") {
		t.Error("expected hook in output")
	}
	if !strings.Contains(text, "- pick containers") {
		t.Error("expected main points in output")
	}
}
