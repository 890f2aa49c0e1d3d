package docs

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"benchgate/internal/agents"
)

// RenderChecklist renders a compliance checklist as markdown.
func RenderChecklist(c agents.Checklist) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", c.Title)
	if c.BuildingID != "" {
		fmt.Fprintf(&b, "**Building ID:** %s\n\n", c.BuildingID)
	}
	fmt.Fprintf(&b, "**Deadline:** %s\n\n", c.Deadline)
	b.WriteString("## Tasks\n\n")

	for _, item := range c.Items {
		marker := " "
		if item.Status != "pending" {
			marker = "x"
		}
		required := ""
		if item.Required {
			required = " *(required)*"
		}
		fmt.Fprintf(&b, "- [%s] %d. %s%s\n", marker, item.ID, item.Task, required)
		if item.Notes != "" {
			fmt.Fprintf(&b, "  - Note: %s\n", item.Notes)
		}
	}

	return b.String()
}

// RenderDocumentation renders the process documentation as markdown.
func RenderDocumentation(doc agents.ProcessDoc) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "%s\n\n", doc.Purpose)
	fmt.Fprintf(&b, "**Regulation year:** %d  \n**Deadline:** %s\n\n", doc.RegulationYear, doc.Deadline)

	b.WriteString("## Workflow\n\n")
	for _, step := range doc.Workflow {
		fmt.Fprintf(&b, "%d. **%s**: %s (%s)", step.Step, step.Name, step.Description, step.ResponsibleParty)
		if step.Deadline != "" {
			fmt.Fprintf(&b, ", due %s", step.Deadline)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Validation rules\n\n")
	b.WriteString("| Rule | Description | Severity |\n|---|---|---|\n")
	for _, rule := range doc.ValidationRules {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", rule.Rule, rule.Description, rule.Severity)
	}

	if len(doc.EdgeCases) > 0 {
		b.WriteString("\n## Edge cases\n\n")
		for _, ec := range doc.EdgeCases {
			fmt.Fprintf(&b, "- **%s** (%s, %s): %s. Handling: %s\n",
				ec.Scenario, ec.ProcessAffected, ec.Severity, ec.Description, ec.RecommendedHandling)
		}
	}

	b.WriteString("\n## Common errors\n\n")
	for _, ce := range doc.CommonErrors {
		fmt.Fprintf(&b, "- **%s**: %s. Resolution: %s\n", ce.Error, ce.Cause, ce.Resolution)
	}

	return b.String()
}

// ToHTML converts rendered markdown into a standalone HTML fragment.
func ToHTML(md string) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)

	opts := html.RendererOptions{Flags: html.CommonFlags}
	renderer := html.NewRenderer(opts)

	return markdown.ToHTML([]byte(md), p, renderer)
}
