package main

import (
	"fmt"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/crawl"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := sitepdf.ExportFilter{Limit: c.Limit}
	if c.URL != "" {
		startURL, err := crawl.CanonicalURL(c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
			return err
		}
		filter.StartURL = &startURL
	}

	exports, err := deps.Exports.FindExports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}

	if len(exports) == 0 {
		fmt.Fprintln(deps.Stdout, "No exports found. Use 'sitepdf crawl' to create one.")
		return nil
	}

	for _, e := range exports {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), crawl.FormatBytes(e.Bytes), e.StartURL, e.Path)
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	export, err := deps.Exports.FindExportByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s\n", export.Filename)
	fmt.Fprintf(deps.Stdout, "  start:   %s\n", export.StartURL)
	fmt.Fprintf(deps.Stdout, "  path:    %s\n", export.Path)
	fmt.Fprintf(deps.Stdout, "  size:    %s\n", crawl.FormatBytes(export.Bytes))
	fmt.Fprintf(deps.Stdout, "  hash:    %s\n", export.ContentHash)
	fmt.Fprintf(deps.Stdout, "  created: %s\n", export.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "  pages:   %d\n", len(export.Pages))
	for _, p := range export.Pages {
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "  %3d. %s  %s\n", p.Position+1, title, p.URL)
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Exports.DeleteExport(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted export %s\n", c.ID)
	return nil
}
