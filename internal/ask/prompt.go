package ask

import (
	"strings"
)

// Section pairs a source with its formatted context block.
type Section struct {
	Source Source
	Block  string
}

// Placeholder is substituted for a section whose block is empty.
func Placeholder(src Source) string {
	return "(No matching " + src.Label + " found)"
}

const promptRole = `You are a Supply Chain Intelligence Assistant for an importer of electrical and automation components. You answer questions from the procurement team using only the company data provided below.`

const promptGuidelines = `GUIDELINES:
1. Check ALL data sections above before answering; the same supplier or SKU can appear in several of them.
2. Prioritize the True Cost (landed cost in IDR, including freight, duty and tax) over the nominal unit price whenever you compare or report costs.
3. Compare the most recent quotes against the most recent purchase orders for the same item and call out any price improvement or increase, with the difference.
4. Answer directly without preamble. Use short Markdown tables or bullet lists when they make numbers easier to read.
5. If the data does not contain the answer, say so plainly instead of guessing.`

// BuildPrompt assembles the instruction document sent as system content.
// Sections keep the given order; empty blocks show their placeholder.
func BuildPrompt(question string, sections []Section) string {
	var sb strings.Builder
	sb.WriteString(promptRole)
	sb.WriteString("\n\nUSER QUESTION:\n")
	sb.WriteString(question)
	sb.WriteString("\n")

	for _, sec := range sections {
		sb.WriteString("\n=== ")
		sb.WriteString(sec.Source.Heading)
		sb.WriteString(" ===\n")
		if sec.Block == "" {
			sb.WriteString(Placeholder(sec.Source))
		} else {
			sb.WriteString(sec.Block)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(promptGuidelines)
	return sb.String()
}
