package domain

import "github.com/shopspring/decimal"

// SummaryKind groups summary items for display; it carries no calculation meaning.
type SummaryKind string

const (
	SummaryInput  SummaryKind = "input"
	SummaryOption SummaryKind = "option"
	SummaryResult SummaryKind = "result"
)

// SummaryItem is one labelled figure handed to report and share-message builders.
// Option items carry their value in Text.
type SummaryItem struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Text  string          `json:"text,omitempty"`
	Kind  SummaryKind     `json:"kind"`
}

func InputItem(label string, v decimal.Decimal) SummaryItem {
	return SummaryItem{Label: label, Value: v, Kind: SummaryInput}
}

func OptionItem(label, text string) SummaryItem {
	return SummaryItem{Label: label, Text: text, Kind: SummaryOption}
}

func ResultItem(label string, v decimal.Decimal) SummaryItem {
	return SummaryItem{Label: label, Value: v, Kind: SummaryResult}
}
