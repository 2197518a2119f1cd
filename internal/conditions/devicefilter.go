package conditions

import (
	"fmt"
	"strings"

	"github.com/ca-engine/go-core/pkg/types"
)

// Device filter rule operators. This set is fixed: any other operator
// is a parse error, and parse errors fail open.
const (
	opEq          = "-eq"
	opNe          = "-ne"
	opStartsWith  = "-startswith"
	opContains    = "-contains"
	opNotContains = "-notcontains"
	opIn          = "-in"
)

var filterOps = map[string]bool{
	opEq:          true,
	opNe:          true,
	opStartsWith:  true,
	opContains:    true,
	opNotContains: true,
	opIn:          true,
}

// filterClause is one parsed comparison of a device filter rule
type filterClause struct {
	property string
	op       string
	value    string
	values   []string // populated for -in
}

// DeviceFilterMatcher evaluates the device filter condition. Rules are
// parsed with a small fixed grammar; an unparseable rule is treated as
// matching (fail open) and flagged in the result details.
type DeviceFilterMatcher struct{}

// Dimension implements Matcher
func (m *DeviceFilterMatcher) Dimension() string { return types.DimensionDeviceFilter }

// Evaluate implements Matcher
func (m *DeviceFilterMatcher) Evaluate(ctx *types.SimulationContext, policy *types.Policy) types.ConditionMatchResult {
	cond := policy.Conditions.DeviceFilter
	if cond == nil || strings.TrimSpace(cond.Rule) == "" {
		return notConfigured(m.Dimension(), "no device filter configured")
	}

	clauses, err := parseDeviceFilterRule(cond.Rule)
	if err != nil {
		// Availability over a malformed filter silently blocking everyone
		return types.ConditionMatchResult{
			Dimension: m.Dimension(),
			Matched:   true,
			Phase:     types.PhaseNotConfigured,
			Reason:    "device filter rule could not be parsed; treated as matching",
			Details: map[string]interface{}{
				"parseError": err.Error(),
				"rule":       cond.Rule,
			},
		}
	}

	ruleMatches := true
	for _, clause := range clauses {
		if !clause.matches(ctx.Device) {
			ruleMatches = false
			break
		}
	}

	if cond.Mode == types.DeviceFilterModeExclude {
		if ruleMatches {
			return excluded(m.Dimension(), "device matches the exclusion filter", map[string]interface{}{
				"rule": cond.Rule,
			})
		}
		return included(m.Dimension(), "device does not match the exclusion filter", nil)
	}

	if ruleMatches {
		return included(m.Dimension(), "device matches the filter", map[string]interface{}{
			"rule": cond.Rule,
		})
	}
	return notIncluded(m.Dimension(), "device does not match the filter", map[string]interface{}{
		"rule": cond.Rule,
	})
}

// matches applies one clause to the device signals. Comparisons are
// case-insensitive, which also covers boolean literals ("True"/"true").
func (c *filterClause) matches(device types.DeviceSignals) bool {
	actual, ok := lookupDeviceProperty(device, c.property)
	if !ok {
		// Missing property only satisfies the negating operators
		return c.op == opNe || c.op == opNotContains
	}

	switch c.op {
	case opEq:
		return strings.EqualFold(actual, c.value)
	case opNe:
		return !strings.EqualFold(actual, c.value)
	case opStartsWith:
		return strings.HasPrefix(strings.ToLower(actual), strings.ToLower(c.value))
	case opContains:
		return strings.Contains(strings.ToLower(actual), strings.ToLower(c.value))
	case opNotContains:
		return !strings.Contains(strings.ToLower(actual), strings.ToLower(c.value))
	case opIn:
		return containsFold(c.values, actual)
	default:
		return false
	}
}

// lookupDeviceProperty resolves a filter property against the device
// attribute map, with well-known properties derived from the typed
// signals when the map does not carry them
func lookupDeviceProperty(device types.DeviceSignals, property string) (string, bool) {
	for k, v := range device.Attributes {
		if strings.EqualFold(k, property) {
			return v, true
		}
	}

	switch strings.ToLower(property) {
	case "iscompliant":
		return fmt.Sprintf("%t", device.IsCompliant), true
	case "operatingsystem":
		if device.Platform == "" {
			return "", false
		}
		return device.Platform, true
	case "trusttype":
		if device.HybridJoined {
			return "ServerAD", true
		}
		return "", false
	}
	return "", false
}

// parseDeviceFilterRule parses a rule of the form
//
//	device.<property> <op> <value> [and device.<property> <op> <value>]...
//
// where <op> is one of -eq, -ne, -startsWith, -contains, -notContains,
// -in. Values may be double-quoted; -in takes a bracketed comma list.
func parseDeviceFilterRule(rule string) ([]filterClause, error) {
	tokens, err := tokenizeFilterRule(rule)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty rule")
	}

	var clauses []filterClause
	i := 0
	for {
		if i+3 > len(tokens) {
			return nil, fmt.Errorf("incomplete clause at token %d", i)
		}

		prop := tokens[i]
		if !strings.HasPrefix(strings.ToLower(prop.text), "device.") {
			return nil, fmt.Errorf("expected device property, got %q", prop.text)
		}
		property := prop.text[len("device."):]
		if property == "" {
			return nil, fmt.Errorf("empty device property")
		}

		op := strings.ToLower(tokens[i+1].text)
		if !filterOps[op] {
			return nil, fmt.Errorf("unsupported operator %q", tokens[i+1].text)
		}

		value := tokens[i+2]
		clause := filterClause{property: property, op: op}
		if op == opIn {
			if value.kind != tokenList {
				return nil, fmt.Errorf("operator -in requires a bracketed list")
			}
			clause.values = value.list
		} else {
			if value.kind == tokenList {
				return nil, fmt.Errorf("operator %s does not take a list", op)
			}
			clause.value = value.text
		}
		clauses = append(clauses, clause)

		i += 3
		if i == len(tokens) {
			return clauses, nil
		}
		if !strings.EqualFold(tokens[i].text, "and") {
			return nil, fmt.Errorf("expected 'and', got %q", tokens[i].text)
		}
		i++
	}
}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenList
)

type filterToken struct {
	kind tokenKind
	text string
	list []string
}

// tokenizeFilterRule splits a rule into words, quoted strings, and
// bracketed lists
func tokenizeFilterRule(rule string) ([]filterToken, error) {
	var tokens []filterToken
	runes := []rune(rule)
	i := 0
	for i < len(runes) {
		switch {
		case runes[i] == ' ' || runes[i] == '\t':
			i++
		case runes[i] == '"':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '"' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote")
			}
			tokens = append(tokens, filterToken{kind: tokenWord, text: string(runes[i+1 : end])})
			i = end + 1
		case runes[i] == '[':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == ']' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("unterminated bracket list")
			}
			var items []string
			for _, part := range strings.Split(string(runes[i+1:end]), ",") {
				item := strings.TrimSpace(part)
				item = strings.Trim(item, `"`)
				if item != "" {
					items = append(items, item)
				}
			}
			tokens = append(tokens, filterToken{kind: tokenList, list: items})
			i = end + 1
		default:
			j := i
			for j < len(runes) && runes[j] != ' ' && runes[j] != '\t' {
				j++
			}
			tokens = append(tokens, filterToken{kind: tokenWord, text: string(runes[i:j])})
			i = j
		}
	}
	return tokens, nil
}
