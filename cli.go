package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/raushankrgupta/nyakazi-storefront/cart"
	"github.com/raushankrgupta/nyakazi-storefront/catalog"
	"github.com/raushankrgupta/nyakazi-storefront/models"
	"github.com/spf13/cobra"
)

var (
	searchFlag   string
	categoryFlag string
	priceFlag    string
	sortFlag     string
	withURLFlag  bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List products the way the shop page would",
	Long: `Runs the shop filter and sort pipeline against the built-in catalog.

Example:
  storefront catalog --category leafy-greens --sort price-low`,
	RunE: runCatalog,
}

var productCmd = &cobra.Command{
	Use:   "product [id]",
	Short: "Show a product and its related products",
	Args:  cobra.ExactArgs(1),
	RunE:  runProduct,
}

var orderPreviewCmd = &cobra.Command{
	Use:   "order-preview [id:weight:qty | bundle:id:qty]...",
	Short: "Print the WhatsApp order message for a cart",
	Long: `Builds a cart from the arguments and prints the hand-off message.

Example:
  storefront order-preview 1:50g:2 3:100g:1 bundle:starter-pack:1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOrderPreview,
}

func init() {
	catalogCmd.Flags().StringVar(&searchFlag, "search", "", "case-insensitive search term")
	catalogCmd.Flags().StringVar(&categoryFlag, "category", "all", "all, leafy-greens, powders or mushrooms")
	catalogCmd.Flags().StringVar(&priceFlag, "price", "all", "all, 0-200, 200-400 or 400+")
	catalogCmd.Flags().StringVar(&sortFlag, "sort", "featured", "featured, price-low, price-high, rating or name")
	orderPreviewCmd.Flags().BoolVar(&withURLFlag, "url", false, "also print the wa.me link")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	store, err := catalog.Load()
	if err != nil {
		return err
	}

	category, err := catalog.ParseCategory(categoryFlag)
	if err != nil {
		return err
	}
	price, err := catalog.ParsePriceRange(priceFlag)
	if err != nil {
		return err
	}
	sortKey, err := catalog.ParseSortKey(sortFlag)
	if err != nil {
		return err
	}

	products := catalog.Run(store.Products(), catalog.Query{
		Search:     searchFlag,
		Category:   category,
		PriceRange: price,
		Sort:       sortKey,
	})
	printProducts(cmd.OutOrStdout(), products)
	fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d products\n", len(products), store.Len())
	return nil
}

func printProducts(out io.Writer, products []models.Product) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCAL NAME\t50G\t100G\tRATING\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%.1f\t%d\n", p.ID, p.Name, p.LocalName, p.Price50, p.Price100, p.Rating, p.InStock)
	}
	tw.Flush()
}

func runProduct(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	store, err := catalog.Load()
	if err != nil {
		return err
	}
	products := store.Products()
	product, err := catalog.Resolve(products, id)
	if err != nil {
		return fmt.Errorf("product %d: %w", id, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s) - %s\n", product.Name, product.LocalName, product.Origin)
	fmt.Fprintf(out, "Ksh %d / 50g, Ksh %d / 100g, %.1f stars from %d reviews\n\n", product.Price50, product.Price100, product.Rating, product.Reviews)
	fmt.Fprintln(out, product.Description)
	fmt.Fprintln(out, "\nNutrition:")
	for _, n := range product.NutritionalInfo {
		fmt.Fprintf(out, "  %-16s %s\n", n.Name, n.Value)
	}
	fmt.Fprintln(out, "\nRelated:")
	printProducts(out, catalog.Related(products, product, catalog.RelatedLimit))
	return nil
}

// fillCart applies "id:weight:qty" and "bundle:id:qty" arguments to a cart
func fillCart(store *catalog.Catalog, m cart.Manager, args []string) error {
	products := store.Products()
	for _, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) != 3 {
			return fmt.Errorf("bad item %q, want id:weight:qty or bundle:id:qty", arg)
		}
		qty, err := strconv.Atoi(parts[2])
		if err != nil {
			return fmt.Errorf("bad quantity in %q", arg)
		}

		if parts[0] == "bundle" {
			bundle, ok := store.Bundle(parts[1])
			if !ok {
				return fmt.Errorf("unknown bundle %q", parts[1])
			}
			m.AddBundle(bundle.LineItem(qty))
			continue
		}

		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("bad product id in %q", arg)
		}
		weight, err := models.ParseWeightTier(parts[1])
		if err != nil {
			return err
		}
		product, err := catalog.Resolve(products, id)
		if err != nil {
			return fmt.Errorf("product %d: %w", id, err)
		}
		if !product.Available() {
			return fmt.Errorf("%s is out of stock", product.Name)
		}
		m.AddItem(product, weight, qty)
	}
	return nil
}

func runOrderPreview(cmd *cobra.Command, args []string) error {
	store, err := catalog.Load()
	if err != nil {
		return err
	}

	m := cart.NewMemoryCart()
	if err := fillCart(store, m, args); err != nil {
		return err
	}

	f := orderFormatter()
	message := f.Format(m.Items(), m.Bundles())
	fmt.Fprintln(cmd.OutOrStdout(), message)
	if withURLFlag {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", f.HandoffURL(message))
	}
	return nil
}
