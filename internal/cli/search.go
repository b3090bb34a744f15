package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigyaps/yigyaps/pkg/client"
)

var (
	searchCategory string
	searchMaturity string
	searchAuthor   string
	searchOrder    string
	searchLimit    int
	searchOffset   int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the skill catalog",
	Long: `Search the catalog by free text, matched against package ids, display
names and tags. Without a query, lists packages by the chosen order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "filter by category")
	searchCmd.Flags().StringVar(&searchMaturity, "maturity", "", "filter by maturity (experimental|beta|stable|deprecated)")
	searchCmd.Flags().StringVar(&searchAuthor, "author", "", "filter by author name")
	searchCmd.Flags().StringVar(&searchOrder, "order", "", "result order (relevance|installs|rating|recency)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "page size")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "page offset")
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	results, total, err := c.Search(cmd.Context(), client.SearchParams{
		Query:    query,
		Category: searchCategory,
		Maturity: searchMaturity,
		Author:   searchAuthor,
		Order:    searchOrder,
		Limit:    searchLimit,
		Offset:   searchOffset,
	})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println(dimStyle.Render("No packages found."))
		return nil
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("PACKAGES (%d total)", total)))
	for _, pkg := range results {
		rating := "unrated"
		if pkg.RatingMean != nil {
			rating = fmt.Sprintf("%.1f★ (%d)", *pkg.RatingMean, pkg.RatingCount)
		}
		price := "free"
		if pkg.PriceUSD != nil {
			price = "$" + pkg.PriceUSD.String()
		}
		fmt.Printf("%s  %s\n", titleStyle.Render(pkg.PackageID), dimStyle.Render("v"+pkg.Version))
		fmt.Printf("  %s\n", pkg.DisplayName)
		fmt.Printf("  %s\n", dimStyle.Render(fmt.Sprintf("%s · %s · %d installs · %s · %s",
			pkg.Category, pkg.License, pkg.InstallCount, rating, price)))
	}
	return nil
}
