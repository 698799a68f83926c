package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"causalmap/domain/config"
	pkgerrors "causalmap/pkg/errors"
)

// Label is the display text of a node.
type Label struct {
	value string
}

// NewLabel creates a label with validation using default configuration
func NewLabel(text string) (Label, error) {
	return NewLabelWithConfig(text, config.DefaultDomainConfig())
}

// NewLabelWithConfig trims the text and checks it against the configured length.
func NewLabelWithConfig(text string, cfg *config.DomainConfig) (Label, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Label{}, pkgerrors.NewValidationError("label cannot be empty")
	}
	if utf8.RuneCountInString(text) > cfg.MaxLabelLength {
		return Label{}, pkgerrors.NewValidationError(
			fmt.Sprintf("label exceeds maximum length of %d characters", cfg.MaxLabelLength))
	}
	return Label{value: text}, nil
}

// LabelFromText derives a label from free text by keeping its first max runes.
func LabelFromText(text string, max int) (Label, error) {
	if max <= 0 {
		return Label{}, pkgerrors.NewValidationError("label length must be positive")
	}
	if runes := []rune(text); len(runes) > max {
		text = string(runes[:max])
	}
	cfg := config.DefaultDomainConfig()
	if max > cfg.MaxLabelLength {
		cfg.MaxLabelLength = max
	}
	return NewLabelWithConfig(text, cfg)
}

func (l Label) String() string { return l.value }

func (l Label) IsZero() bool { return l.value == "" }

// Summary returns the label truncated to maxLength runes with an ellipsis.
func (l Label) Summary(maxLength int) string {
	if maxLength <= 3 {
		return ""
	}
	if utf8.RuneCountInString(l.value) <= maxLength {
		return l.value
	}
	runes := []rune(l.value)
	return string(runes[:maxLength-3]) + "..."
}
