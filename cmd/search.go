package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/scout-cli/internal/browser"
	"github.com/sells-group/scout-cli/internal/config"
	"github.com/sells-group/scout-cli/internal/facility"
	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/paginate"
)

var (
	searchQuery     string
	searchStates    []string
	searchCareTypes []string
	searchPrice     string
	searchPage      int
	searchView      string
	searchJSON      bool
)

type searchResult struct {
	paginate.Page[model.Facility]
	Facets facility.Facets `json:"facets"`
	Nav    paginate.Nav    `json:"nav"`
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search and filter facilities",
	Long:  "Lists facilities matching the search term and the state, care type, and price facets, complete records first.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		view, err := browser.ParseViewMode(searchView)
		if err != nil {
			return err
		}
		price, err := facility.ParsePriceCategory(searchPrice)
		if err != nil {
			return err
		}

		e, err := initEnv(cmd.Context(), config.ModeQuery)
		if err != nil {
			return err
		}

		sess := browser.NewSession(e.Catalog.Facilities, e.Sizes)
		sess.SetView(view)
		sess.SetSearchTerm(searchQuery)
		sess.SetStates(upperAll(searchStates)...)
		sess.SetCareTypes(searchCareTypes...)
		sess.SetPrice(price)
		sess.SetPage(searchPage)

		res := sess.Results()
		out := cmd.OutOrStdout()
		if searchJSON {
			return writeJSON(out, searchResult{Page: res, Facets: sess.Facets(), Nav: paginate.NavOf(res)})
		}
		printFacilities(out, res, view)
		printNav(out, paginate.NavOf(res))
		return nil
	},
}

// upperAll normalizes state codes typed on the command line.
func upperAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToUpper(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "q", "q", "", "search term over name, city, state, zip, and ownership group")
	searchCmd.Flags().StringSliceVar(&searchStates, "state", nil, "state code filter (repeatable)")
	searchCmd.Flags().StringSliceVar(&searchCareTypes, "care-type", nil, "care type filter (repeatable)")
	searchCmd.Flags().StringVar(&searchPrice, "price", "", "price band: 1-3k, 3-5k, 5-7k, or 7k+")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "page number")
	searchCmd.Flags().StringVar(&searchView, "view", string(browser.ViewCard), "result layout: card or table")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print JSON instead of text")
	rootCmd.AddCommand(searchCmd)
}
