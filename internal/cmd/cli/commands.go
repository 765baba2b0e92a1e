package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
	"github.com/louisbranch/psgc-mcp/internal/hierarchy"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

func levelNames() []string {
	names := make([]string, 0, len(geocode.Levels))
	for _, l := range geocode.Levels {
		names = append(names, l.String())
	}
	return names
}

func parseLevel(arg string) (geocode.Level, error) {
	level, err := geocode.ParseLevel(arg)
	if err != nil {
		return "", fmt.Errorf("%w (want %s)", err, levelUsage())
	}
	return level, nil
}

func completeLevels(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return levelNames(), cobra.ShellCompDirectiveNoFileComp
}

func childUsage(parent geocode.Level) string {
	children := psgc.ChildLevels(parent)
	if len(children) == 0 {
		return "a parent level with children"
	}
	names := make([]string, 0, len(children))
	for _, l := range children {
		names = append(names, l.Plural())
	}
	return "one of " + strings.Join(names, ", ")
}

// completeChildren suggests parent levels first, then the child listings the
// chosen parent supports.
func completeChildren(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		var parents []string
		for _, l := range geocode.Levels {
			if len(psgc.ChildLevels(l)) > 0 {
				parents = append(parents, l.String())
			}
		}
		return parents, cobra.ShellCompDirectiveNoFileComp
	case 2:
		parent, err := geocode.ParseLevel(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var children []string
		for _, l := range psgc.ChildLevels(parent) {
			children = append(children, l.Plural())
		}
		return children, cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "list <level>",
		Short:             "List every entity of a level",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLevels,
		RunE: a.withClient(func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(args[0])
			if err != nil {
				return err
			}
			items, err := psgc.List[map[string]any](cmd.Context(), a.client(), level)
			if err != nil {
				return err
			}
			return a.print(cmd, items)
		}),
	}
}

func (a *app) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "get <level> <code>",
		Short:             "Fetch one entity by level and code",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeLevels,
		RunE: a.withClient(func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(args[0])
			if err != nil {
				return err
			}
			entity, err := a.client().Entity(cmd.Context(), level, args[1])
			if err != nil {
				return err
			}
			return a.print(cmd, entity)
		}),
	}
}

func (a *app) childrenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "children <parent-level> <code> <child-level>",
		Short: "List the children of an entity",
		Example: `  psgc children region 010000000 provinces
  psgc children city-municipality 012801000 barangays`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completeChildren,
		RunE: a.withClient(func(cmd *cobra.Command, args []string) error {
			parent, err := parseLevel(args[0])
			if err != nil {
				return err
			}
			child, err := parseLevel(args[2])
			if err != nil {
				return err
			}
			if !psgc.HasChildScope(parent, child) {
				return fmt.Errorf("%s has no %s listing (want %s)", parent, child.Plural(), childUsage(parent))
			}
			items, err := psgc.Children[map[string]any](cmd.Context(), a.client(), parent, args[1], child)
			if err != nil {
				return err
			}
			return a.print(cmd, items)
		}),
	}
}

func (a *app) searchCommand() *cobra.Command {
	var (
		levelArg string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Find entities whose name contains a string",
		Long: `Find entities whose name contains a string, ignoring case and accents.

Regions, provinces, cities, municipalities and barangays are scanned unless
--type narrows the search to one level.`,
		Args: cobra.ExactArgs(1),
		RunE: a.withClient(func(cmd *cobra.Command, args []string) error {
			query := psgc.SearchQuery{Name: args[0], Limit: limit}
			if levelArg != "" {
				level, err := parseLevel(levelArg)
				if err != nil {
					return err
				}
				query.Type = level
			}
			hits, err := a.client().SearchByName(cmd.Context(), query)
			if err != nil {
				return err
			}
			return a.print(cmd, hits)
		}),
	}
	cmd.Flags().StringVar(&levelArg, "type", "", "Restrict the search to one level")
	cmd.Flags().IntVar(&limit, "limit", psgc.DefaultSearchLimit, "Maximum number of results")
	return cmd
}

func (a *app) hierarchyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hierarchy <code>",
		Short: "Resolve the ancestry of a code, root first",
		Args:  cobra.ExactArgs(1),
		RunE: a.withClient(func(cmd *cobra.Command, args []string) error {
			resolver := hierarchy.NewResolver(a.client(), hierarchy.WithLogger(a.logger))
			h, err := resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, h)
		}),
	}
}

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <code>",
		Short: "Report whether a code exists in the dataset",
		Args:  cobra.ExactArgs(1),
		RunE: a.withClient(func(cmd *cobra.Command, args []string) error {
			validator := hierarchy.NewValidator(a.client(), hierarchy.WithLogger(a.logger))
			return a.print(cmd, validator.Validate(cmd.Context(), args[0]))
		}),
	}
}

type cacheCleanup struct {
	Removed int `json:"removed"`
}

func (a *app) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or maintain the response cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show the number of cached entries and their keys",
			Args:  cobra.NoArgs,
			RunE: a.withClient(func(cmd *cobra.Command, _ []string) error {
				stats, err := a.client().CacheStats(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(cmd, stats)
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Drop every cached entry",
			Args:  cobra.NoArgs,
			RunE: a.withClient(func(cmd *cobra.Command, _ []string) error {
				if err := a.client().ClearCache(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared successfully")
				return err
			}),
		},
		&cobra.Command{
			Use:   "cleanup",
			Short: "Remove expired cache entries",
			Args:  cobra.NoArgs,
			RunE: a.withClient(func(cmd *cobra.Command, _ []string) error {
				removed, err := a.client().CleanupCache(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(cmd, cacheCleanup{Removed: removed})
			}),
		},
	)
	return cmd
}
