package assemble

import (
	"context"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
)

// editorialSection is generated from every routed item rather than holding
// items of its own. It only renders when a routing override declares it.
const editorialSection = "editorial"

// Assembler groups collector output into ordered digest sections and fills
// each one with generated or fallback HTML.
type Assembler struct {
	routing Routing
	writer  Generator
}

func New(routing Routing, writer Generator) *Assembler {
	return &Assembler{routing: routing, writer: writer}
}

// Assemble turns the raw collector results into a dated issue. Failed and
// skipped collectors contribute nothing; items from collectors without a
// route are dropped with a warning rather than misfiled.
func (a *Assembler) Assemble(ctx context.Context, results []domain.CollectorResult, date string) domain.Issue {
	buckets := make(map[string][]domain.Item)
	var routed []domain.Item

	for _, res := range results {
		if res.Skipped || res.Error != "" || len(res.Items) == 0 {
			continue
		}
		sectionID, ok := a.routing.Map[res.Name]
		if !ok {
			logger.WarnObj("collector has no section route; dropping items", "assemble_unrouted", map[string]any{
				"collector": res.Name,
				"items":     len(res.Items),
			})
			continue
		}
		buckets[sectionID] = append(buckets[sectionID], res.Items...)
		routed = append(routed, res.Items...)
	}

	sections := make([]domain.Section, 0, len(a.routing.Sections))
	for _, def := range a.routing.Sections {
		if def.ID == editorialSection {
			if len(routed) == 0 {
				continue
			}
			content := a.writer.GenerateSection(ctx, editorialSection, rankItems(routed))
			if content == "" {
				continue
			}
			sections = append(sections, domain.Section{
				ID:      def.ID,
				Title:   def.Title,
				Content: content,
			})
			continue
		}

		items := rankItems(buckets[def.ID])
		if len(items) == 0 {
			continue
		}
		sections = append(sections, domain.Section{
			ID:      def.ID,
			Title:   def.Title,
			Content: a.writer.GenerateSection(ctx, def.ID, items),
			Items:   items,
		})
	}

	issue := domain.NewIssue(date, sections)
	logger.InfoObj("issue assembled", "assemble_done", map[string]any{
		"date":     issue.Date,
		"sections": len(issue.Sections),
		"items":    issue.TotalItems,
	})
	return issue
}
