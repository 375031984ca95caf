package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shopfront/internal/adapter/output"
	"github.com/jmylchreest/shopfront/internal/catalog"
	"github.com/jmylchreest/shopfront/internal/core"
	"github.com/jmylchreest/shopfront/internal/model"
)

var productsOpts struct {
	// Filter options
	category string
	inStock  bool
	limit    int
	search   string

	// Sort options
	sortBy    string
	sortOrder string

	// Output options
	format         string
	field          string
	template       string
	listCategories bool

	// Fetch options
	strict  bool
	timeout time.Duration
}

var productsCmd = &cobra.Command{
	Use:     "products [index|id]",
	Aliases: []string{"get", "ls"},
	Short:   "Fetch and output products",
	Long: `Fetch every product, newest first, and output it in various formats.

A failed fetch prints an empty list and logs the error, the same as an
empty table. Use --strict to exit non-zero instead.

With an index (1-based) or ID argument, outputs that specific product.

Examples:
  # List all products
  shopfront products

  # Only in-stock tools, cheapest first
  shopfront products --category tools --in-stock --sort price --order asc

  # Output as JSON
  shopfront products --format json

  # Price of the third product
  shopfront products 3 --field price

  # Pick with a launcher and copy the id
  shopfront products -f dmenu | fuzzel -d | shopfront products --field id`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProducts,
}

func init() {
	rootCmd.AddCommand(productsCmd)

	// Filter flags
	productsCmd.Flags().StringVar(&productsOpts.category, "category", "",
		"Filter by category (case-insensitive)")
	productsCmd.Flags().BoolVar(&productsOpts.inStock, "in-stock", false,
		"Only show products with stock")
	productsCmd.Flags().IntVarP(&productsOpts.limit, "limit", "n", 0,
		"Maximum number of products to show (0=unlimited)")
	productsCmd.Flags().StringVarP(&productsOpts.search, "search", "s", "",
		"Search in name, description and category")

	// Sort flags
	productsCmd.Flags().StringVar(&productsOpts.sortBy, "sort", "created",
		"Sort by field (created, name, price, stock)")
	productsCmd.Flags().StringVar(&productsOpts.sortOrder, "order", "desc",
		"Sort order (asc, desc)")

	// Output flags
	productsCmd.Flags().StringVarP(&productsOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, dmenu, ids)")
	productsCmd.Flags().StringVar(&productsOpts.field, "field", "",
		"Output single field from each product (id, name, description, price, category, stock, image)")
	productsCmd.Flags().StringVar(&productsOpts.template, "template", "",
		"Custom Go template for plain/dmenu output")

	productsCmd.Flags().BoolVar(&productsOpts.listCategories, "categories", false,
		"List the categories present instead of products")

	// Fetch flags
	productsCmd.Flags().BoolVar(&productsOpts.strict, "strict", false,
		"Return fetch errors instead of an empty list")
	productsCmd.Flags().DurationVar(&productsOpts.timeout, "timeout", 30*time.Second,
		"Fetch timeout (0 = none)")
}

func runProducts(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(productsOpts.format)
	if err != nil {
		return err
	}
	sortOpts, err := parseSortOptions()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if productsOpts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, productsOpts.timeout)
		defer cancel()
	}

	products, err := fetchProducts(ctx, cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if productsOpts.listCategories {
		for _, c := range core.Categories(products) {
			fmt.Fprintln(w, c)
		}
		return nil
	}

	// Search and sort first so the limit keeps the top of the sorted list
	products = core.Search(products, productsOpts.search)
	core.Sort(products, sortOpts)
	products = core.Filter(products, core.FilterOptions{
		Category:    productsOpts.category,
		InStockOnly: productsOpts.inStock,
		Limit:       productsOpts.limit,
	})

	if len(args) > 0 {
		p, err := lookupProduct(products, args[0])
		if err != nil {
			return err
		}
		products = []model.Product{*p}
		// A single product defaults to JSON
		if !cmd.Flags().Changed("format") {
			format = output.FormatJSON
		}
	}

	if productsOpts.field != "" {
		for i := range products {
			fmt.Fprintln(w, output.FormatField(&products[i], productsOpts.field))
		}
		return nil
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = productsOpts.template
	return output.NewFormatter(format, opts).Format(w, products)
}

// fetchProducts reads products from the configured source. Without --strict
// failures are logged and yield an empty list.
func fetchProducts(ctx context.Context, cmd *cobra.Command) ([]model.Product, error) {
	src, cleanup, err := newSource(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}
	defer cleanup()

	fetcher := catalog.NewFetcher(src, logger)

	if !productsOpts.strict {
		return fetcher.FetchProducts(ctx), nil
	}

	res := fetcher.Fetch(ctx)
	if !res.OK() {
		return nil, res.Err
	}
	logger.Debug("fetched products", "fetch_id", res.FetchID, "count", len(res.Products), "elapsed", res.Elapsed)
	return res.Products, nil
}

// lookupProduct finds a product by 1-based index, product id, or a dmenu
// line whose first field is the index.
func lookupProduct(products []model.Product, selection string) (*model.Product, error) {
	selection = strings.TrimSpace(selection)

	if before, _, found := strings.Cut(selection, "|"); found {
		selection = strings.TrimSpace(before)
	}

	if p := core.LookupByID(products, selection); p != nil {
		return p, nil
	}

	if idx, err := strconv.Atoi(selection); err == nil {
		if p := core.LookupByIndex(products, idx); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("product at index %d not found", idx)
	}

	return nil, fmt.Errorf("product with ID %s not found", selection)
}

func parseFormat(s string) (output.FormatType, error) {
	switch f := output.FormatType(strings.ToLower(s)); f {
	case output.FormatPlain, output.FormatJSON, output.FormatYAML, output.FormatDmenu, output.FormatIDs:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

func parseSortOptions() (core.SortOptions, error) {
	field, err := core.ParseSortField(productsOpts.sortBy)
	if err != nil {
		return core.SortOptions{}, err
	}
	order, err := core.ParseSortOrder(productsOpts.sortOrder)
	if err != nil {
		return core.SortOptions{}, err
	}
	return core.SortOptions{Field: field, Order: order}, nil
}
