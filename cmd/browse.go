package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scout-cli/internal/browser"
	"github.com/sells-group/scout-cli/internal/config"
	"github.com/sells-group/scout-cli/internal/facility"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the directory interactively",
	Long:  "Starts a line-oriented session: type a search term, toggle facets, page through results, and open profiles. Type help for commands.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := initEnv(cmd.Context(), config.ModeQuery)
		if err != nil {
			return err
		}
		return newShell(e, cmd.OutOrStdout()).run(cmd.InOrStdin())
	},
}

const browseHelp = `Commands:
  q <term>         search by name, city, state, zip, or ownership group
  state <XX>       toggle a state filter
  care <type>      toggle a care type filter
  price <band>     1-3k, 3-5k, 5-7k, 7k+, or any
  view card|table  switch layout
  page <n>, next, prev
  clear            clear all filters
  open <id>        show a facility profile
  residents <id> [name]
  back             return to the results with the previous filters
  options          list filter values
  quit`

// shell drives a browser.Session from text commands.
type shell struct {
	env  *env
	out  io.Writer
	sess *browser.Session
	// saved is the facet selection carried across a profile visit.
	saved *facility.Facets
}

func newShell(e *env, out io.Writer) *shell {
	return &shell{env: e, out: out, sess: browser.NewSession(e.Catalog.Facilities, e.Sizes)}
}

func (s *shell) run(in io.Reader) error {
	s.render()
	sc := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(s.out, "> ")
		if !sc.Scan() {
			break
		}
		if !s.exec(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

// exec applies one command line. It returns false when the session ends.
func (s *shell) exec(line string) bool {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "":
		return true
	case "quit", "exit":
		return false
	case "help":
		_, _ = fmt.Fprintln(s.out, browseHelp)
		return true
	case "options":
		opts := facility.FilterOptions()
		_, _ = fmt.Fprintf(s.out, "States: %s\n", strings.Join(opts.States, " "))
		_, _ = fmt.Fprintf(s.out, "Care types: %s\n", strings.Join(opts.CareTypes, ", "))
		for _, p := range opts.Prices {
			_, _ = fmt.Fprintf(s.out, "Price %s: %s\n", p.Value, p.Label)
		}
		return true
	case "q", "search":
		s.sess.SetSearchTerm(arg)
	case "state":
		s.sess.ToggleState(strings.ToUpper(arg))
	case "care":
		s.sess.ToggleCareType(arg)
	case "price":
		if strings.EqualFold(arg, "any") {
			arg = ""
		}
		c, err := facility.ParsePriceCategory(arg)
		if err != nil {
			s.fail(err)
			return true
		}
		s.sess.SetPrice(c)
	case "view":
		mode, err := browser.ParseViewMode(strings.ToLower(arg))
		if err != nil {
			s.fail(err)
			return true
		}
		s.sess.SetView(mode)
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			s.fail(eris.Errorf("invalid page %q", arg))
			return true
		}
		s.sess.SetPage(n)
	case "next":
		s.sess.SetPage(s.sess.Nav().Next())
	case "prev":
		s.sess.SetPage(s.sess.Nav().Prev())
	case "clear":
		s.sess.ClearFilters()
	case "open":
		s.open(arg)
		return true
	case "residents":
		s.residents(arg)
		return true
	case "back":
		if s.saved != nil {
			s.sess.WithSelection(*s.saved)
			s.saved = nil
		}
	default:
		_, _ = fmt.Fprintf(s.out, "unknown command %q, type help\n", verb)
		return true
	}

	s.render()
	return true
}

func (s *shell) render() {
	if s.sess.Term() != "" || !s.sess.Facets().IsZero() {
		_, _ = fmt.Fprintf(s.out, "%d facilities match\n", s.sess.Count())
	}
	res := s.sess.Results()
	printFacilities(s.out, res, s.sess.View())
	printNav(s.out, s.sess.Nav())
}

func (s *shell) open(arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		s.fail(eris.Errorf("invalid facility id %q", arg))
		return
	}
	p, ok := browser.BuildProfile(s.env.Catalog.Facilities, s.env.Catalog.Contacts, s.env.Linker, id, "")
	if !ok {
		_, _ = fmt.Fprintln(s.out, "facility not found")
		return
	}
	sel := s.sess.Selection()
	s.saved = &sel
	printProfile(s.out, p)
}

func (s *shell) residents(arg string) {
	idArg, term, _ := strings.Cut(arg, " ")
	id, err := strconv.Atoi(idArg)
	if err != nil {
		s.fail(eris.Errorf("invalid facility id %q", idArg))
		return
	}
	f, ok := facility.FindByID(s.env.Catalog.Facilities, id)
	if !ok {
		_, _ = fmt.Fprintln(s.out, "facility not found")
		return
	}
	list := browser.NewResidentList(s.env.Resolver.ForFacility(s.env.Catalog.Residents, f), s.env.Sizes.Residents)
	list.SetSearchTerm(strings.TrimSpace(term))
	res := list.Results()
	printResidents(s.out, res)
}

func (s *shell) fail(err error) {
	_, _ = fmt.Fprintf(s.out, "error: %v\n", err)
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
