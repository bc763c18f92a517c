package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ListResponseCLI:
		return formatListHuman(v), nil
	case *CategorizeResponseCLI:
		return formatCategorizeHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatListHuman(resp *ListResponseCLI) string {
	var b strings.Builder

	nameWidth := 0
	for _, icon := range resp.Icons {
		nameWidth = max(nameWidth, len(icon.Name))
	}

	for _, icon := range resp.Icons {
		fmt.Fprintf(&b, "%s %-*s", icon.marker, nameWidth, icon.Name)

		switch {
		case icon.AliasOf != "":
			fmt.Fprintf(&b, "  → %s", icon.AliasOf)
		case icon.Path != "":
			fmt.Fprintf(&b, "  %s", icon.Path)
		}
		if len(icon.Aliases) > 0 {
			fmt.Fprintf(&b, "  (aliases: %s)", strings.Join(icon.Aliases, ", "))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "(%d/%d) Icons", resp.Matched, resp.Total)
	if resp.Shown < resp.Matched {
		fmt.Fprintf(&b, ", showing %d", resp.Shown)
	}
	fmt.Fprintf(&b, " in %s at %dpx", resp.Theme, resp.Size)
	return b.String()
}
