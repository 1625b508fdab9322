package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsvkit/tsvjoin/internal/config"
	"github.com/tsvkit/tsvjoin/internal/db"
	"github.com/tsvkit/tsvjoin/internal/join"
	"github.com/tsvkit/tsvjoin/internal/lookup"
)

var (
	cfgPath       string
	firstSpec     string
	secondSpec    string
	keepSpec      string
	insertPos     int
	includeHeader bool
	prefixFirst   string
	prefixSecond  string
	fill01        bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "tsvjoin [lookup-file]",
	Short: "Left-outer-join a tab-delimited stream against a lookup table",
	Long: `tsvjoin reads tab-delimited rows from standard input, looks each row's key
columns up in a secondary table (a tab-delimited file or a Postgres query),
and splices the selected lookup columns into the row at a fixed position.
Every input row is emitted exactly once, matched or not.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJoin,
}

func runJoin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var prof *config.Profile
	if cfgPath != "" {
		var err error
		prof, err = config.LoadProfile(cfgPath)
		if err != nil {
			return err
		}
	}

	opts, err := resolveOptions(cmd, prof)
	if err != nil {
		return err
	}

	// The positional file beats the profile's lookup source.
	filePath := ""
	if len(args) == 1 {
		filePath = args[0]
	}
	query := ""
	if prof != nil {
		if filePath == "" {
			filePath = prof.Lookup.File
		}
		query = prof.Lookup.Query
	}
	if filePath == "" && query == "" {
		return fmt.Errorf("a lookup file argument or a profile lookup source is required")
	}

	var tbl *lookup.Table
	if filePath != "" {
		tbl, err = lookup.LoadFile(filePath, opts.SecondKeyCols, opts.KeepCols, opts.IncludeHeader)
	} else {
		pool, perr := db.NewPool(ctx, &prof.Connection)
		if perr != nil {
			return fmt.Errorf("connecting to database: %w", perr)
		}
		defer pool.Close()
		tbl, err = lookup.LoadQuery(ctx, pool, query, opts.SecondKeyCols, opts.KeepCols, opts.IncludeHeader)
	}
	if err != nil {
		return err
	}

	sum, err := join.New(opts, tbl).Run(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Join complete:")
		fmt.Fprintf(os.Stderr, "  lookup entries: %d\n", tbl.Len())
		fmt.Fprintf(os.Stderr, "  rows processed: %d\n", sum.Processed)
		fmt.Fprintf(os.Stderr, "  matched: %d\n", sum.Matched)
		fmt.Fprintf(os.Stderr, "  missing: %d\n", sum.Missing)
	}

	return nil
}

// resolveOptions merges flags over profile defaults and resolves the result
// once. A profile value applies only where the flag was left untouched.
func resolveOptions(cmd *cobra.Command, prof *config.Profile) (*config.Options, error) {
	raw := config.Raw{
		First:         firstSpec,
		Second:        secondSpec,
		Keep:          keepSpec,
		Insert:        insertPos,
		IncludeHeader: includeHeader,
		PrefixFirst:   prefixFirst,
		PrefixSecond:  prefixSecond,
		Fill01:        fill01,
	}
	if prof != nil {
		flags := cmd.Flags()
		if !flags.Changed("first") && prof.Join.First != "" {
			raw.First = prof.Join.First
		}
		if !flags.Changed("second") && prof.Join.Second != "" {
			raw.Second = prof.Join.Second
		}
		if !flags.Changed("keep") && prof.Join.Keep != "" {
			raw.Keep = prof.Join.Keep
		}
		if !flags.Changed("insert") && prof.Join.Insert != 0 {
			raw.Insert = prof.Join.Insert
		}
		if !flags.Changed("includeHeader") {
			raw.IncludeHeader = prof.Join.IncludeHeader
		}
		if !flags.Changed("prefixFirstHeader") && prof.Join.PrefixFirstHeader != "" {
			raw.PrefixFirst = prof.Join.PrefixFirstHeader
		}
		if !flags.Changed("prefixSecondHeader") && prof.Join.PrefixSecondHeader != "" {
			raw.PrefixSecond = prof.Join.PrefixSecondHeader
		}
		if !flags.Changed("fill01") {
			raw.Fill01 = prof.Join.Fill01
		}
	}
	return raw.Resolve()
}

func init() {
	rootCmd.Flags().StringVar(&firstSpec, "first", "1", "comma-separated 1-based key columns in the stdin stream")
	rootCmd.Flags().StringVar(&secondSpec, "second", "1", "comma-separated 1-based key columns in the lookup table")
	rootCmd.Flags().StringVar(&keepSpec, "keep", "", "comma-separated 1-based lookup columns to insert")
	rootCmd.Flags().IntVar(&insertPos, "insert", 1, "1-based position before which the new columns are spliced")
	rootCmd.Flags().BoolVar(&includeHeader, "includeHeader", false, "treat the first line of both inputs as a header")
	rootCmd.Flags().StringVar(&prefixFirst, "prefixFirstHeader", "", "prefix every field of the stdin header with <prefix>.")
	rootCmd.Flags().StringVar(&prefixSecond, "prefixSecondHeader", "", "prefix every field of the derived lookup header with <prefix>.")
	rootCmd.Flags().BoolVar(&fill01, "fill01", false, "insert a single 1/0 presence indicator instead of lookup data")
	rootCmd.Flags().StringVar(&cfgPath, "config", "", "path to YAML profile")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "print a join summary to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
