package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", err
		}
		return r.Render(markdown)
	}
}

// SummaryMarkdown describes a traced execution as a markdown table.
func SummaryMarkdown(res *domain.Result) string {
	var sb strings.Builder
	sb.WriteString("## Execution summary\n\n")
	sb.WriteString("| | |\n|---|---|\n")
	for _, row := range summaryRows(res) {
		sb.WriteString(fmt.Sprintf("| %s | `%s` |\n", row[0], row[1]))
	}
	return sb.String()
}

// RenderSummary writes the execution summary to w. Styled output goes through
// glamour and falls back to plain lines if rendering fails.
func RenderSummary(w io.Writer, res *domain.Result, styled bool) error {
	if styled {
		out, err := NewRenderer()(SummaryMarkdown(res))
		if err == nil {
			_, err = io.WriteString(w, out)
			return err
		}
	}

	for _, row := range summaryRows(res) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", strings.ToLower(row[0]), row[1]); err != nil {
			return err
		}
	}
	return nil
}

func summaryRows(res *domain.Result) [][2]string {
	status := "success"
	if res.Failed() {
		status = "failed (" + res.Err.Error() + ")"
	}

	rows := [][2]string{
		{"Steps", fmt.Sprint(res.Steps)},
		{"Calls", fmt.Sprint(res.Calls)},
		{"Gas used", fmt.Sprint(res.GasUsed)},
		{"Status", status},
	}
	if res.Contract != nil {
		rows = append(rows, [2]string{"Contract", res.Contract.Hex()})
	}
	if len(res.ReturnData) > 0 {
		rows = append(rows, [2]string{"Return data", hexutil.Encode(res.ReturnData)})
	}
	return rows
}
