package ask

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_Structure(t *testing.T) {
	po, _ := LookupSource(SourcePurchaseOrders)
	quotes, _ := LookupSource(SourceQuotes)

	prompt := BuildPrompt("Show me Schneider price history", []Section{
		{Source: po, Block: "[PO] Supplier: Schneider"},
		{Source: quotes, Block: ""},
	})

	assert.True(t, strings.HasPrefix(prompt, "You are a Supply Chain Intelligence Assistant"))
	assert.Contains(t, prompt, "USER QUESTION:\nShow me Schneider price history\n")
	assert.Contains(t, prompt, "=== RECENT PURCHASE ORDERS ===\n[PO] Supplier: Schneider\n")
	assert.Contains(t, prompt, "=== RECENT SUPPLIER QUOTES ===\n(No matching quotes found)\n")
	assert.Contains(t, prompt, "1. Check ALL data sections")
	assert.Contains(t, prompt, "True Cost")
	assert.Contains(t, prompt, "most recent quotes against the most recent purchase orders")
	assert.Contains(t, prompt, "without preamble")

	// Sections appear in the given order, before the guidelines.
	iPO := strings.Index(prompt, "RECENT PURCHASE ORDERS")
	iQ := strings.Index(prompt, "RECENT SUPPLIER QUOTES")
	iG := strings.Index(prompt, "GUIDELINES:")
	assert.Less(t, iPO, iQ)
	assert.Less(t, iQ, iG)
}

func TestBuildPrompt_AllEmptySectionsStillWellFormed(t *testing.T) {
	var sections []Section
	for _, src := range AllSources() {
		sections = append(sections, Section{Source: src})
	}
	prompt := BuildPrompt("xyz123nonexistent", sections)

	for _, src := range AllSources() {
		assert.Contains(t, prompt, "=== "+src.Heading+" ===\n"+Placeholder(src))
	}
	assert.Contains(t, prompt, "GUIDELINES:")
}

func TestPlaceholder(t *testing.T) {
	po, _ := LookupSource(SourcePurchaseOrders)
	assert.Equal(t, "(No matching POs found)", Placeholder(po))
}
