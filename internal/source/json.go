package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/altinukshini/truelies-tui/internal/model"
)

// Result is one entry of the suite's JSON results file.
type Result struct {
	TestName       string  `json:"test_name"`
	RetentionScore float64 `json:"retention_score"`
	FactsRetained  int     `json:"facts_retained"`
	TotalFacts     int     `json:"total_facts"`
	AllRetained    *bool   `json:"all_retained,omitempty"`
	Timestamp      string  `json:"timestamp"`
	Status         string  `json:"status,omitempty"`
	TestCategory   string  `json:"test_category,omitempty"`
	UserInput      string  `json:"user_input,omitempty"`
	BotResponse    string  `json:"bot_response,omitempty"`
	Error          string  `json:"error,omitempty"`
}

type resultsEnvelope struct {
	Results []Result `json:"results"`
}

func loadJSONFile(path string, opts Options) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadJSON(f, opts)
}

// LoadJSON decodes either a bare array of results or {"results": [...]}.
func LoadJSON(r io.Reader, opts Options) ([]model.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	var results []Result
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &results); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
	} else {
		var env resultsEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
		results = env.Results
	}

	rows := make([]model.Row, len(results))
	for i, res := range results {
		rows[i] = res.Row(opts.threshold())
	}
	return rows, nil
}

// Row converts a result into a report row.
func (res Result) Row(passThreshold float64) model.Row {
	status := res.Status
	if status == "" {
		passed := res.RetentionScore >= passThreshold
		if res.AllRetained != nil {
			passed = *res.AllRetained
		}
		status = model.DeriveStatus(res.RetentionScore, passed)
	}
	return model.Row{
		TestName: res.TestName,
		Status:   status,
		Score:    res.RetentionScore,
		Date:     res.Timestamp,
		Facts:    model.FormatFacts(res.FactsRetained, res.TotalFacts),
		Details:  res.details(),
	}
}

func (res Result) details() []model.Detail {
	var out []model.Detail
	add := func(k, v string) {
		if v != "" {
			out = append(out, model.Detail{Key: k, Value: v})
		}
	}
	add("Category", res.TestCategory)
	if res.AllRetained != nil {
		add("All retained", strconv.FormatBool(*res.AllRetained))
	}
	add("User input", res.UserInput)
	add("Bot response", res.BotResponse)
	add("Error", res.Error)
	return out
}
