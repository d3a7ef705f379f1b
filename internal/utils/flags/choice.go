// Package flags provides helpers for binding and resolving Cobra flags shared across commands.
package flags

import (
	"errors"
	"fmt"
	"strings"
)

const (
	choicePlaceholderPrefix  = "<"
	choicePlaceholderSuffix  = ">"
	choiceSeparatorLiteral   = "|"
	choiceUsageEmptyTemplate = "`%s`"
	choiceUsageFullTemplate  = "`%s` %s"
	choiceTypeNameConstant   = "choice"
	invalidChoiceTemplate    = "%q is not one of %s"
)

// ErrInvalidChoice indicates a flag value outside the allowed set.
var ErrInvalidChoice = errors.New("invalid choice")

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := buildChoicePlaceholder(defaultChoice, choices)
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

func buildChoicePlaceholder(defaultChoice string, choices []string) string {
	return choicePlaceholderPrefix + strings.Join(highlightDefaultChoice(defaultChoice, choices), choiceSeparatorLiteral) + choicePlaceholderSuffix
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := make([]string, 0, len(choices))
	for _, normalizedChoice := range normalizeChoices(choices) {
		displayValue := normalizedChoice
		if normalizedChoice == normalizedDefault {
			displayValue = strings.ToUpper(normalizedChoice)
		}
		highlighted = append(highlighted, displayValue)
	}
	return highlighted
}

func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		normalized = append(normalized, normalizedChoice)
	}
	return normalized
}

// ChoiceValue is a pflag.Value accepting one of a fixed set of case-insensitive options.
type ChoiceValue struct {
	selected string
	choices  []string
}

// NewChoiceValue constructs a ChoiceValue preset to defaultChoice.
func NewChoiceValue(defaultChoice string, choices []string) *ChoiceValue {
	return &ChoiceValue{selected: strings.ToLower(strings.TrimSpace(defaultChoice)), choices: normalizeChoices(choices)}
}

// String returns the selected option.
func (value *ChoiceValue) String() string {
	if value == nil {
		return ""
	}
	return value.selected
}

// Set validates and stores the option.
func (value *ChoiceValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	for _, choice := range value.choices {
		if choice == normalizedValue {
			value.selected = normalizedValue
			return nil
		}
	}
	return fmt.Errorf("%w: "+invalidChoiceTemplate, ErrInvalidChoice, rawValue, buildChoicePlaceholder("", value.choices))
}

// Type names the flag value kind in help output.
func (value *ChoiceValue) Type() string {
	return choiceTypeNameConstant
}
