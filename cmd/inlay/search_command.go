package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"inlay/internal/search"
)

// searchResultView is the JSON shape of one search hit.
type searchResultView struct {
	Key         string   `json:"key"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Filename    string   `json:"filename"`
	SizeBytes   int64    `json:"size_bytes"`
	HasMetadata bool     `json:"has_metadata"`
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var tags []string
	var category string
	var description string
	var keyword string
	var lookupFlag string
	var listCategories bool
	var listTags bool
	var details bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the lookup by tag, category, description, or keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _, err := ctx.loadLookup(lookupFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if listCategories {
				counts := search.Categories(file)
				if jsonOut {
					return writeJSON(cmd, counts)
				}
				rows := make([][]string, 0, len(counts))
				for _, count := range counts {
					rows = append(rows, []string{count.Name, strconv.Itoa(count.Count)})
				}
				fmt.Fprintln(out, renderTable([]column{
					{header: "Category"},
					{header: "Images", alignRight: true},
				}, rows))
				return nil
			}

			if listTags {
				allTags := search.Tags(file)
				if jsonOut {
					return writeJSON(cmd, allTags)
				}
				for _, tag := range allTags {
					fmt.Fprintln(out, tag)
				}
				fmt.Fprintf(out, "\n%d tags\n", len(allTags))
				return nil
			}

			query := search.Query{
				Tags:        tags,
				Category:    category,
				Description: description,
				Keyword:     keyword,
			}
			if query.IsEmpty() {
				return errors.New("no search criteria: use --tag, --category, --description, or --keyword")
			}

			results := search.Run(file, query)

			if jsonOut {
				views := make([]searchResultView, 0, len(results))
				for _, result := range results {
					views = append(views, newSearchResultView(result))
				}
				return writeJSON(cmd, map[string]any{
					"total":   len(views),
					"results": views,
				})
			}

			if len(results) == 0 {
				fmt.Fprintln(out, "No images found matching your search criteria.")
				return nil
			}

			if details {
				for _, result := range results {
					printResultDetails(cmd, result)
				}
			} else {
				rows := make([][]string, 0, len(results))
				for _, result := range results {
					rows = append(rows, []string{
						result.Key,
						result.Entry.Category,
						truncate(strings.Join(result.Entry.Tags, ", "), 30),
						truncate(result.Entry.Description, 40),
					})
				}
				fmt.Fprintln(out, renderTable([]column{
					{header: "Key"},
					{header: "Category"},
					{header: "Tags"},
					{header: "Description"},
				}, rows))
			}

			fmt.Fprintf(out, "%d of %d images matched\n", len(results), len(file.Images))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "Match any of the given tags (repeatable)")
	cmd.Flags().StringVar(&category, "category", "", "Match the category exactly (case-insensitive)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Substring match on descriptions")
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "Substring match across all metadata fields")
	cmd.Flags().StringVar(&lookupFlag, "lookup", "", "Lookup file to search")
	cmd.Flags().BoolVar(&listCategories, "list-categories", false, "List categories with image counts")
	cmd.Flags().BoolVar(&listTags, "list-tags", false, "List every distinct tag")
	cmd.Flags().BoolVar(&details, "details", false, "Show the full metadata of each match")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of tables")

	return cmd
}

func newSearchResultView(result search.Result) searchResultView {
	return searchResultView{
		Key:         result.Key,
		Category:    result.Entry.Category,
		Tags:        result.Entry.Tags,
		Description: result.Entry.Description,
		Notes:       result.Entry.Notes,
		Filename:    result.Entry.Filename,
		SizeBytes:   result.Entry.SizeBytes,
		HasMetadata: result.Entry.HasMetadata,
	}
}

func printResultDetails(cmd *cobra.Command, result search.Result) {
	out := cmd.OutOrStdout()
	entry := result.Entry
	fmt.Fprintln(out, result.Key)
	fmt.Fprintf(out, "  Category:    %s\n", entry.Category)
	if len(entry.Tags) > 0 {
		fmt.Fprintf(out, "  Tags:        %s\n", strings.Join(entry.Tags, ", "))
	}
	if entry.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", entry.Description)
	}
	if entry.Notes != "" {
		fmt.Fprintf(out, "  Notes:       %s\n", entry.Notes)
	}
	fmt.Fprintf(out, "  File:        %s (%s)\n", entry.Filename, formatSize(entry.SizeBytes))
	fmt.Fprintf(out, "  Usage:       <img src=\"{{%s}}\">\n", result.Key)
	fmt.Fprintln(out)
}
