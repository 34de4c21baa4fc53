package extract

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"

	"github.com/sells-group/procure-cli/internal/model"
)

const documentSchema = `{
  "type": "object",
  "required": ["document_type", "supplier_name", "line_items"],
  "properties": {
    "document_type": {"enum": ["quote", "proforma_invoice", "purchase_order", "invoice"]},
    "supplier_name": {"type": "string", "minLength": 1},
    "document_number": {"type": ["string", "null"]},
    "document_date": {"type": ["string", "null"]},
    "reference_numbers": {"type": ["array", "null"], "items": {"type": "string"}},
    "currency": {"type": ["string", "null"]},
    "total_value": {"type": ["number", "null"]},
    "line_items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["description", "qty", "unit_price"],
        "properties": {
          "sku": {"type": ["string", "null"]},
          "description": {"type": "string"},
          "qty": {"type": "number", "minimum": 0},
          "unit_price": {"type": "number", "minimum": 0},
          "total": {"type": ["number", "null"]}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// Parse cleans a model response, validates it against the document schema
// and decodes it.
func Parse(text string) (*model.ExtractedDocument, error) {
	raw := cleanJSON(text)
	if raw == "" {
		return nil, eris.New("extract: empty model response")
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, eris.Wrap(err, "extract: response is not valid JSON")
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return nil, eris.Errorf("extract: response failed validation: %s", strings.Join(msgs, "; "))
	}

	var doc model.ExtractedDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, eris.Wrap(err, "extract: decode response")
	}
	doc.SupplierName = strings.TrimSpace(doc.SupplierName)
	doc.Currency = strings.ToUpper(strings.TrimSpace(doc.Currency))
	return &doc, nil
}

// cleanJSON strips markdown fences and extracts the JSON object.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
