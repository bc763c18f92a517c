package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"iconview/internal/category"

	"github.com/spf13/cobra"
)

var (
	categorizeName   string
	categorizeFormat string
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize <path>",
	Short: "Print the tags derived from an icon path",
	Long: `Split an icon file path into the tags the catalog would give it and
report which known categories they match.

Examples:
  iconview categorize /usr/share/icons/Adwaita/scalable/places/folder.svg
  iconview categorize ~/.local/share/icons/MyTheme/apps/app.svg --name app`,
	Args: cobra.ExactArgs(1),
	RunE: runCategorize,
}

func init() {
	categorizeCmd.Flags().StringVar(&categorizeName, "name", "", "Icon name (default: file name without extension)")
	categorizeCmd.Flags().StringVar(&categorizeFormat, "format", string(FormatHuman), "Output format (human, json)")
	rootCmd.AddCommand(categorizeCmd)
}

func runCategorize(cmd *cobra.Command, args []string) error {
	path := args[0]

	defs, err := category.NewStore(categoriesFileFromFlags(cmd)).Load()
	if err != nil {
		return err
	}

	name := categorizeName
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	resp := buildCategorizeResponse(defs, name, path)
	output, err := FormatResponse(resp, OutputFormat(categorizeFormat))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// categoriesFileFromFlags returns the category file named on the command line
// or the default one
func categoriesFileFromFlags(cmd *cobra.Command) string {
	if cmd.Flags().Changed("categories-file") {
		return categoriesFileFlag
	}
	return ""
}

// CategorizeResponseCLI is the output of the categorize command
type CategorizeResponseCLI struct {
	Path       string   `json:"path"`
	Name       string   `json:"name"`
	Components []string `json:"components"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
}

func buildCategorizeResponse(defs []category.Definition, name, path string) *CategorizeResponseCLI {
	tags := category.Tags(name, path)
	categories := category.Classify(defs, tags)

	return &CategorizeResponseCLI{
		Path:       path,
		Name:       name,
		Components: category.Categorize(path),
		Tags:       tags,
		Categories: categories,
	}
}

func formatCategorizeHuman(resp *CategorizeResponseCLI) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path:       %s\n", resp.Path)
	fmt.Fprintf(&b, "Name:       %s\n", resp.Name)
	fmt.Fprintf(&b, "Components: %s\n", strings.Join(resp.Components, " "))
	fmt.Fprintf(&b, "Tags:       %s\n", strings.Join(resp.Tags, " "))
	fmt.Fprintf(&b, "Categories: %s", strings.Join(resp.Categories, " "))
	return b.String()
}
