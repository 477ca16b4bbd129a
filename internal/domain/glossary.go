package domain

import "fmt"

// FieldsSource governs whether an entry's field map is authored in the
// catalog or fetched live from the remote instance.
type FieldsSource string

const (
	FieldsStatic  FieldsSource = "static"
	FieldsDynamic FieldsSource = "dynamic"
)

// FieldMap holds remote field metadata keyed by field name. The descriptor
// shape is owned by the remote system and treated as opaque here.
type FieldMap map[string]any

// Record is one remote row as returned by search_read.
type Record map[string]any

// GlossaryEntry describes one remote business model for LLM consumption.
// Entries are authored statically; dynamic entries get their Fields filled
// in by the enricher before publication.
type GlossaryEntry struct {
	Model                 string         `json:"model" mapstructure:"model"`
	Aliases               []string       `json:"aliases,omitempty" mapstructure:"aliases"`
	Category              string         `json:"category,omitempty" mapstructure:"category"`
	Description           string         `json:"description,omitempty" mapstructure:"description"`
	ExtraDescription      string         `json:"extra_description,omitempty" mapstructure:"extraDescription"`
	AvailableActions      []string       `json:"available_actions,omitempty" mapstructure:"availableActions"`
	ModelSpecificActions  map[string]any `json:"model_specific_actions,omitempty" mapstructure:"modelSpecificActions"`
	AliasesMany2oneFields []string       `json:"aliases_many2one_fields,omitempty" mapstructure:"aliasesMany2oneFields"`
	FieldsSource          FieldsSource   `json:"fields_source" mapstructure:"fieldsSource"`
	Fields                FieldMap       `json:"fields" mapstructure:"fields"`
	Examples              []any          `json:"examples,omitempty" mapstructure:"examples"`
	Hints                 []string       `json:"hints,omitempty" mapstructure:"hints"`
}

// ResourceURI derives the stable address for this entry.
func (e GlossaryEntry) ResourceURI() string {
	return fmt.Sprintf("glossary://%s", e.Model)
}

// ResourceName derives the registration slot name for this entry.
func (e GlossaryEntry) ResourceName() string {
	return fmt.Sprintf("glossary_%s", e.Model)
}

// Title derives the human-facing resource title.
func (e GlossaryEntry) Title() string {
	return fmt.Sprintf("%s Glossary", e.Model)
}

// Tags is the category (defaulted) unioned with the entry's aliases.
func (e GlossaryEntry) Tags() []string {
	category := e.Category
	if category == "" {
		category = DefaultCategory
	}
	tags := make([]string, 0, len(e.Aliases)+1)
	tags = append(tags, category)
	for _, alias := range e.Aliases {
		if alias == category {
			continue
		}
		tags = append(tags, alias)
	}
	return tags
}

// Clone deep-copies the entry so enrichment never aliases caller-held state.
func (e GlossaryEntry) Clone() GlossaryEntry {
	out := e
	out.Aliases = append([]string(nil), e.Aliases...)
	out.AvailableActions = append([]string(nil), e.AvailableActions...)
	out.AliasesMany2oneFields = append([]string(nil), e.AliasesMany2oneFields...)
	out.Examples = append([]any(nil), e.Examples...)
	out.Hints = append([]string(nil), e.Hints...)
	if e.ModelSpecificActions != nil {
		out.ModelSpecificActions = make(map[string]any, len(e.ModelSpecificActions))
		for k, v := range e.ModelSpecificActions {
			out.ModelSpecificActions[k] = v
		}
	}
	if e.Fields != nil {
		out.Fields = make(FieldMap, len(e.Fields))
		for k, v := range e.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

// Validate checks the invariants the publisher relies on.
func (e GlossaryEntry) Validate() error {
	if e.Model == "" {
		return E(CodeInvalidArgument, "glossary.validate", "entry model is empty", nil)
	}
	switch e.FieldsSource {
	case FieldsStatic, FieldsDynamic:
	default:
		return E(CodeInvalidArgument, "glossary.validate",
			fmt.Sprintf("entry %q has unknown fields source %q", e.Model, e.FieldsSource), nil)
	}
	return nil
}

// ValidateCatalog checks model uniqueness across the whole catalog.
func ValidateCatalog(catalog []GlossaryEntry) error {
	seen := make(map[string]struct{}, len(catalog))
	for _, entry := range catalog {
		if err := entry.Validate(); err != nil {
			return err
		}
		if _, ok := seen[entry.Model]; ok {
			return E(CodeInvalidArgument, "glossary.validate",
				fmt.Sprintf("duplicate catalog entry for model %q", entry.Model), nil)
		}
		seen[entry.Model] = struct{}{}
	}
	return nil
}
