package stage

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	RuleFieldPresent = "field_present"
	RuleCustom       = "custom"
)

// ErrBadRuleDocument marks a conditions document that failed to parse or
// validate; template writes reject these so transitions never see them.
var ErrBadRuleDocument = errors.New("invalid conditions document")

// Rule is one tagged entry of a template's conditions document.
// field_present rules name an opportunity field the caller must assert as
// populated; custom rules carry an opaque code agreed with the caller.
type Rule struct {
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
	Code  string `json:"code,omitempty"`
}

// Key is the token callers list in conditions_met to satisfy this rule.
func (r Rule) Key() string {
	if r.Kind == RuleCustom {
		return r.Code
	}
	return r.Field
}

func (r Rule) validate() error {
	switch r.Kind {
	case RuleFieldPresent:
		if r.Field == "" {
			return fmt.Errorf("field_present rule missing field")
		}
	case RuleCustom:
		if r.Code == "" {
			return fmt.Errorf("custom rule missing code")
		}
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
	return nil
}

type RuleSet []Rule

// ParseRules decodes and validates a conditions document. A nil/empty
// document is a valid empty rule set.
func ParseRules(doc []byte) (RuleSet, error) {
	if len(doc) == 0 {
		return nil, nil
	}
	var rs RuleSet
	if err := json.Unmarshal(doc, &rs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRuleDocument, err)
	}
	for i, r := range rs {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("%w: conditions[%d]: %v", ErrBadRuleDocument, i, err)
		}
	}
	return rs, nil
}

// Missing returns the keys of rules not present in met. The engine does not
// verify that met assertions are true; it only checks coverage.
func (rs RuleSet) Missing(met []string) []string {
	if len(rs) == 0 {
		return nil
	}
	have := make(map[string]bool, len(met))
	for _, m := range met {
		have[m] = true
	}
	var missing []string
	for _, r := range rs {
		if !have[r.Key()] {
			missing = append(missing, r.Key())
		}
	}
	return missing
}

// UnmetConditionsError reports required conditions the caller did not assert.
type UnmetConditionsError struct {
	Missing []string
}

func (e *UnmetConditionsError) Error() string {
	return fmt.Sprintf("unmet transition conditions: %v", e.Missing)
}
