// Package documents implements the catalog commands: types, list, detail
// and search.
package documents

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verge88/api-npa3/cmd/common"
	"github.com/verge88/api-npa3/infrastructure/logger"
	"github.com/verge88/api-npa3/internal/api"
	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/output"
)

const formatFlag = "format"

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(formatFlag, "f", output.FormatTable, "output format (table, json)")
}

// setup builds the dependencies and a renderer for cmd. The CLI logs in
// console format unless configured otherwise.
func setup(cmd *cobra.Command) (*common.CommandDeps, *output.Renderer, error) {
	format, err := cmd.Flags().GetString(formatFlag)
	if err != nil {
		return nil, nil, err
	}
	renderer, err := output.NewRenderer(cmd.OutOrStdout(), format)
	if err != nil {
		return nil, nil, err
	}

	deps, err := common.NewCommandDeps(logger.FormatConsole)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	return deps, renderer, nil
}

// TypesCommand lists the supported categories.
func TypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List supported document types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, renderer, err := setup(cmd)
			if err != nil {
				return err
			}
			return renderer.Categories(deps.Catalog.ListCategories())
		},
	}
	addFormatFlag(cmd)
	return cmd
}

// ListCommand prints one page of a category listing.
func ListCommand() *cobra.Command {
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list <type>",
		Short: "List documents of a type",
		Example: `  npa list gost
  npa list orders --page 2 --per-page 10 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, renderer, err := setup(cmd)
			if err != nil {
				return err
			}

			docs, err := deps.Catalog.ListDocuments(cmd.Context(), args[0])
			if err != nil {
				return describe(err, deps.Catalog.CategoryKeys())
			}

			page = max(page, 1)
			perPage = min(max(perPage, 1), deps.Config.Service.MaxPageSize)
			items, pages := api.Paginate(docs, page, perPage)

			return renderer.Documents(output.Page{
				Documents: items,
				Total:     len(docs),
				Page:      page,
				PerPage:   perPage,
				Pages:     pages,
			})
		},
	}
	addFormatFlag(cmd)
	cmd.Flags().IntVar(&page, "page", api.DefaultPage, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", api.DefaultPerPage, "documents per page")
	return cmd
}

// DetailCommand extracts one document.
func DetailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detail <url>",
		Short: "Extract a document's sections and metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, renderer, err := setup(cmd)
			if err != nil {
				return err
			}

			d, err := deps.Catalog.GetDocumentDetail(cmd.Context(), args[0])
			if err != nil {
				return describe(err, nil)
			}
			if renderErr := renderer.Detail(d); renderErr != nil {
				return renderErr
			}
			if d.Failed() {
				return fmt.Errorf("extraction failed: %s", d.Error)
			}
			return nil
		},
	}
	addFormatFlag(cmd)
	return cmd
}

// SearchCommand ranks documents by title.
func SearchCommand() *cobra.Command {
	var query, docType string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search documents by title",
		Example: `  npa search -q "пожарн"
  npa search -q ГОСТ --type gost --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, renderer, err := setup(cmd)
			if err != nil {
				return err
			}

			res, err := deps.Catalog.SearchDocuments(cmd.Context(), query, docType)
			if err != nil {
				return describe(err, append(deps.Catalog.CategoryKeys(), domain.CategoryAll))
			}
			return renderer.Search(res)
		},
	}
	addFormatFlag(cmd)
	cmd.Flags().StringVarP(&query, "query", "q", "", "search query (at least 2 characters)")
	cmd.Flags().StringVarP(&docType, "type", "t", domain.CategoryAll, "document type or \"all\"")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

// describe adds the accepted values to unsupported category errors.
func describe(err error, available []string) error {
	if domain.IsValidation(err) && len(available) > 0 {
		return fmt.Errorf("%w (available: %v)", err, available)
	}
	return err
}
