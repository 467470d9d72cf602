package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/seedmock/pkg/paginate"
)

var (
	seed      string
	itemIndex int
	page      int
	limit     int
	total     int
	offset    int
	cursor    string
	backward  bool
	sortField string
	sortOrder string
	noCache   bool
)

var itemCmd = &cobra.Command{
	Use:   "item MODEL",
	Short: "Generate one item by index",
	Long: `Generate the item at --index for MODEL. Items are identical to the ones
the same index yields in a page or cursor listing with the same seed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session, out io.Writer) error {
			src, err := s.source()
			if err != nil {
				return err
			}
			item, err := s.catalog.Item(src, args[0], itemIndex, seed)
			if err != nil {
				return err
			}
			return emit(out, item)
		})
	},
}

var pageCmd = &cobra.Command{
	Use:   "page MODEL",
	Short: "Generate one page of a listing",
	Long: `Generate a page of MODEL. With --offset the window starts at that item
and the response carries offset pagination instead of page numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session, out io.Writer) error {
			src, err := s.source()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("offset") {
				resp, err := s.catalog.Offset(src, args[0], paginate.OffsetRequest{
					Offset:       offset,
					Limit:        limit,
					Total:        total,
					Seed:         seed,
					DisableCache: noCache,
				})
				if err != nil {
					return err
				}
				return emit(out, resp)
			}
			resp, err := s.catalog.Page(src, args[0], paginate.PageRequest{
				Page:         page,
				Limit:        limit,
				Total:        total,
				Seed:         seed,
				DisableCache: noCache,
			})
			if err != nil {
				return err
			}
			return emit(out, resp)
		})
	},
}

var cursorCmd = &cobra.Command{
	Use:   "cursor MODEL",
	Short: "Generate the window after (or before) a cursor",
	Long: `Generate a cursor-paginated window of MODEL. Pass the nextCursor or
prevCursor of an earlier response with --cursor to continue. Unknown,
malformed or expired cursors start from the beginning.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session, out io.Writer) error {
			src, err := s.source()
			if err != nil {
				return err
			}
			resp, err := s.catalog.Cursor(src, args[0], paginate.CursorRequest{
				Cursor:       cursor,
				Limit:        limit,
				Total:        total,
				Seed:         seed,
				Backward:     backward,
				SortField:    sortField,
				SortOrder:    sortOrder,
				DisableCache: noCache,
			})
			if err != nil {
				return err
			}
			return emit(out, resp)
		})
	},
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&limit, "limit", 0, "Items per window (0 uses the configured default)")
	cmd.Flags().IntVar(&total, "total", 0, "Size of the listing (0 uses the configured default)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Build a fresh snapshot instead of reusing a cached one")
}

func init() {
	for _, cmd := range []*cobra.Command{itemCmd, pageCmd, cursorCmd} {
		cmd.Flags().StringVar(&seed, "seed", "", "Seed driving every generated value")
		rootCmd.AddCommand(cmd)
	}

	itemCmd.Flags().IntVarP(&itemIndex, "index", "i", 0, "Item index")

	addListFlags(pageCmd)
	pageCmd.Flags().IntVarP(&page, "page", "p", 1, "1-based page number")
	pageCmd.Flags().IntVar(&offset, "offset", 0, "Start offset; switches to offset pagination")

	addListFlags(cursorCmd)
	cursorCmd.Flags().StringVarP(&cursor, "cursor", "c", "", "Cursor from an earlier response")
	cursorCmd.Flags().BoolVar(&backward, "backward", false, "Walk toward the start of the listing")
	cursorCmd.Flags().StringVar(&sortField, "sort-field", "", "Sort field recorded in issued cursors")
	cursorCmd.Flags().StringVar(&sortOrder, "sort-order", "", "Sort order recorded in issued cursors (asc, desc)")
}
