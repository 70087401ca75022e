package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/elsanchez/niche-finder/internal/domain"
)

// Columnas fijas por niche; las ideas de video van en triplas al final
var csvHeaders = []string{
	"Niche Name (Original)",
	"Niche Name (Translated)",
	"Description",
	"Audience Demographics",
	"Interest Score",
	"Interest Explanation",
	"Monetization Score",
	"RPM Estimate",
	"Monetization Explanation",
	"Competition Score",
	"Competition Explanation",
	"Sustainability Score",
	"Sustainability Explanation",
	"Content Strategy",
}

// minIdeaColumns asegura un ancho estable aunque haya pocas ideas
const minIdeaColumns = 5

// NichesToCSV serializa una lista de niches a CSV con BOM UTF-8,
// para que Excel detecte el encoding al abrirlo.
func NichesToCSV(niches []domain.Niche) ([]byte, error) {
	if len(niches) == 0 {
		return nil, fmt.Errorf("no niches to export")
	}

	maxIdeas := minIdeaColumns
	for _, n := range niches {
		if len(n.VideoIdeas) > maxIdeas {
			maxIdeas = len(n.VideoIdeas)
		}
	}

	headers := append([]string{}, csvHeaders...)
	for i := 1; i <= maxIdeas; i++ {
		headers = append(headers,
			fmt.Sprintf("Video Idea %d - Title (Original)", i),
			fmt.Sprintf("Video Idea %d - Title (Translated)", i),
			fmt.Sprintf("Video Idea %d - Draft Content", i),
		)
	}

	var buf strings.Builder
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}

	for _, n := range niches {
		row := []string{
			n.NicheName.Original,
			n.NicheName.Translated,
			n.Description,
			n.AudienceDemographics,
			strconv.Itoa(n.Analysis.InterestLevel.Score),
			n.Analysis.InterestLevel.Explanation,
			strconv.Itoa(n.Analysis.MonetizationPotential.Score),
			n.Analysis.MonetizationPotential.RPMEstimate,
			n.Analysis.MonetizationPotential.Explanation,
			strconv.Itoa(n.Analysis.CompetitionLevel.Score),
			n.Analysis.CompetitionLevel.Explanation,
			strconv.Itoa(n.Analysis.Sustainability.Score),
			n.Analysis.Sustainability.Explanation,
			n.ContentStrategy,
		}

		for i := 0; i < maxIdeas; i++ {
			if i < len(n.VideoIdeas) {
				idea := n.VideoIdeas[i]
				row = append(row, idea.Title.Original, idea.Title.Translated, idea.DraftContent)
			} else {
				row = append(row, "", "", "")
			}
		}

		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return []byte(buf.String()), nil
}

// WriteNichesCSV exporta la biblioteca a un archivo CSV
func WriteNichesCSV(niches []domain.Niche, path string) error {
	data, err := NichesToCSV(niches)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}

	return nil
}

// VideoIdeasToText formatea las ideas de video de un niche como texto plano
func VideoIdeasToText(niche domain.Niche) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Video ideas for: %s (%s)\n", niche.NicheName.Translated, niche.NicheName.Original)
	buf.WriteString(strings.Repeat("=", 60) + "\n\n")

	for i, idea := range niche.VideoIdeas {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, idea.Title.Translated)
		if idea.Title.Original != idea.Title.Translated {
			fmt.Fprintf(&buf, "   (%s)\n", idea.Title.Original)
		}
		if idea.DraftContent != "" {
			fmt.Fprintf(&buf, "   %s\n", idea.DraftContent)
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// ContentPlanToText formatea un plan de contenido como texto plano
func ContentPlanToText(nicheName string, plan domain.ContentPlanResult) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Content plan for: %s\n", nicheName)
	buf.WriteString(strings.Repeat("=", 60) + "\n\n")

	for i, idea := range plan.ContentIdeas {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, idea.Title.Translated)
		if idea.Title.Original != idea.Title.Translated {
			fmt.Fprintf(&buf, "   (%s)\n", idea.Title.Original)
		}
		fmt.Fprintf(&buf, "   Hook: %s\n", idea.Hook)
		for _, point := range idea.MainPoints {
			fmt.Fprintf(&buf, "   - %s\n", point)
		}
		if idea.VisualSuggestions != "" {
			fmt.Fprintf(&buf, "   Visuals: %s\n", idea.VisualSuggestions)
		}
		if idea.CallToAction != "" {
			fmt.Fprintf(&buf, "   CTA: %s\n", idea.CallToAction)
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// WriteText exporta un texto plano a un archivo
func WriteText(content, path string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write text file: %w", err)
	}
	return nil
}
