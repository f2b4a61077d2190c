package report

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned by Do for actions outside the button table.
var ErrUnknownAction = errors.New("unknown action")

type Action int

const (
	ActionStats Action = iota
	ActionSortScore
	ActionSortDate
	ActionAdvancedFilters
	ActionSuccessOnly
	ActionFailuresOnly
	ActionShowAll
	ActionExportJSON
	ActionExportPDF
	ActionExportYAML
	ActionToggleDetails
)

var actionNames = map[Action]string{
	ActionStats:           "stats",
	ActionSortScore:       "sort-score",
	ActionSortDate:        "sort-date",
	ActionAdvancedFilters: "advanced-filters",
	ActionSuccessOnly:     "success-only",
	ActionFailuresOnly:    "failures-only",
	ActionShowAll:         "show-all",
	ActionExportJSON:      "export-json",
	ActionExportPDF:       "export-pdf",
	ActionExportYAML:      "export-yaml",
	ActionToggleDetails:   "toggle-details",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction resolves a name produced by Action.String.
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownAction)
}

// Button is one entry of the toolbar.
type Button struct {
	Label  string
	Action Action
	Key    string
}

// buttons is the toolbar in display order.
var buttons = []Button{
	{Label: "Statistics", Action: ActionStats, Key: "s"},
	{Label: "Sort by Score", Action: ActionSortScore, Key: "S"},
	{Label: "Sort by Date", Action: ActionSortDate, Key: "d"},
	{Label: "Advanced Filters", Action: ActionAdvancedFilters, Key: "f"},
	{Label: "Success Only", Action: ActionSuccessOnly, Key: "p"},
	{Label: "Failures Only", Action: ActionFailuresOnly, Key: "x"},
	{Label: "Show All", Action: ActionShowAll, Key: "a"},
	{Label: "Export JSON", Action: ActionExportJSON, Key: "J"},
	{Label: "Export PDF", Action: ActionExportPDF, Key: "P"},
	{Label: "Export YAML", Action: ActionExportYAML, Key: "Y"},
	{Label: "Toggle Details", Action: ActionToggleDetails, Key: "D"},
}

// Buttons returns a copy of the toolbar.
func Buttons() []Button {
	return append([]Button(nil), buttons...)
}

// ButtonForKey finds the toolbar entry bound to key.
func ButtonForKey(key string) (Button, bool) {
	for _, b := range buttons {
		if b.Key == key {
			return b, true
		}
	}
	return Button{}, false
}
