package main

import (
	"fmt"
	"strings"
	"time"

	"iconview/internal/category"
	"iconview/internal/query"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	listSymlink      string
	listSymbolic     string
	listDangling     bool
	listTags         []string
	listCategories   []string
	listNoSearchTags bool
	listLimit        int
	listFormat       string
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Print the icons matching a query",
	Long: `Build the catalog, resolve every alias and print the icons passing the
filters in display order.

Filter modes for --symlink and --symbolic:
  is      only matching icons
  not     hide matching icons
  either  no filtering

Examples:
  iconview list folder
  iconview list --symlink is --format json
  iconview list --category places --category devices
  iconview list --tag scalable --symbolic not --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listSymlink, "symlink", "", "Symlink filter: is, not, either (default from config)")
	listCmd.Flags().StringVar(&listSymbolic, "symbolic", "", "Symbolic filter: is, not, either (default from config)")
	listCmd.Flags().BoolVar(&listDangling, "dangling", false, "Show unresolved symlinks when symlinks are hidden")
	listCmd.Flags().StringSliceVar(&listTags, "tag", nil, "Required tag (repeatable)")
	listCmd.Flags().StringSliceVar(&listCategories, "category", nil, "Included category ID (repeatable, default all)")
	listCmd.Flags().BoolVar(&listNoSearchTags, "no-search-tags", false, "Match the query against names only")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of icons to print (0 = all)")
	listCmd.Flags().StringVar(&listFormat, "format", string(FormatHuman), "Output format (human, json)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	start := time.Now()

	format := OutputFormat(listFormat)
	if format != FormatHuman && format != FormatJSON {
		return fmt.Errorf("unsupported format: %s", listFormat)
	}

	s, err := newSession(cmd, stderr())
	if err != nil {
		return err
	}
	defer s.Close()

	text := ""
	if len(args) > 0 {
		text = args[0]
	}
	opts, err := listOptions(cmd, s.options(), s.defs, text)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	c, err := s.builder.Build(ctx, s.cfg.IconSize)
	if err != nil {
		return err
	}

	engine := query.New(c, s.defs, opts)
	if _, err := resolveAliases(ctx, engine, s.cfg.AliasBatchSize); err != nil {
		return err
	}

	resp := buildListResponse(engine, s.themeName(), listLimit)
	output, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)

	log.Debug().
		Str("query", text).
		Int("matched", resp.Matched).
		Int("total", resp.Total).
		Dur("elapsed", time.Since(start)).
		Msg("list completed")
	return nil
}

// listOptions applies the list flags that were set on top of base
func listOptions(cmd *cobra.Command, base query.Options, defs []category.Definition, text string) (query.Options, error) {
	opts := base.Clone()
	opts.SearchText = text

	flags := cmd.Flags()
	if flags.Changed("symlink") {
		mode, err := parseFilterFlag("symlink", listSymlink)
		if err != nil {
			return opts, err
		}
		opts.Symlink = mode
	}
	if flags.Changed("symbolic") {
		mode, err := parseFilterFlag("symbolic", listSymbolic)
		if err != nil {
			return opts, err
		}
		opts.Symbolic = mode
	}
	if flags.Changed("dangling") {
		opts.ShowDangling = listDangling
	}
	if flags.Changed("no-search-tags") {
		opts.SearchTags = !listNoSearchTags
	}
	if flags.Changed("tag") {
		opts.RequiredTags = listTags
	}
	if flags.Changed("category") {
		known := category.IDs(defs)
		for _, id := range listCategories {
			if !containsFold(known, id) {
				return opts, fmt.Errorf("--category: unknown category %q (known: %s)", id, strings.Join(known, ", "))
			}
		}
		opts.Categories = lowerAll(listCategories)
	}
	return opts, nil
}

// ListResponseCLI is the output of the list command
type ListResponseCLI struct {
	Theme   string        `json:"theme"`
	Size    int           `json:"size"`
	Query   string        `json:"query,omitempty"`
	Total   int           `json:"total"`
	Matched int           `json:"matched"`
	Shown   int           `json:"shown"`
	Icons   []ListIconCLI `json:"icons"`
}

// ListIconCLI is one icon in list output
type ListIconCLI struct {
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Path          string   `json:"path,omitempty"`
	Symbolic      bool     `json:"symbolic"`
	Symlink       bool     `json:"symlink"`
	SymlinkTarget string   `json:"symlinkTarget,omitempty"`
	AliasOf       string   `json:"aliasOf,omitempty"`
	Aliases       []string `json:"aliases,omitempty"`
	Tags          []string `json:"tags"`
	Score         int      `json:"score,omitempty"`

	marker string
}

// buildListResponse converts the visible records of engine, at most limit
// of them when limit is positive
func buildListResponse(engine *query.Engine, themeName string, limit int) *ListResponseCLI {
	res := engine.Result()
	c := engine.Catalog()

	visible := res.Visible
	if limit > 0 && len(visible) > limit {
		visible = visible[:limit]
	}

	icons := make([]ListIconCLI, 0, len(visible))
	for _, i := range visible {
		icon := engine.Icon(i)
		item := ListIconCLI{
			Name:          icon.Name,
			Kind:          icon.KindString(),
			Path:          icon.Path,
			Symbolic:      icon.Symbolic,
			Symlink:       icon.Symlink,
			SymlinkTarget: icon.SymlinkTarget,
			Aliases:       icon.Aliases,
			Tags:          icon.Tags,
			Score:         engine.Score(i),
			marker:        icon.KindIcon(),
		}
		if icon.HasTarget() {
			item.AliasOf = c.Get(icon.AliasTarget).Name
		}
		icons = append(icons, item)
	}

	return &ListResponseCLI{
		Theme:   themeName,
		Size:    c.Size(),
		Query:   engine.Options().SearchText,
		Total:   res.Total,
		Matched: res.Matched,
		Shown:   len(icons),
		Icons:   icons,
	}
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
