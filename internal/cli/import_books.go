package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/importers"
)

// ImportBooksCommand loads the book catalog from an isbn,title,author,year CSV file.
type ImportBooksCommand struct {
	FilePath    string
	DatabaseURL string
	BatchSize   int
	Verbose     bool
	DryRun      bool

	Out io.Writer
}

func NewImportBooksCommand() *ImportBooksCommand {
	return &ImportBooksCommand{Out: os.Stdout}
}

func (cmd *ImportBooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-books", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "books.csv", "Path to the catalog CSV file")
	fs.StringVar(&cmd.DatabaseURL, "db", "", "Database URL (defaults to DATABASE_URL, then "+config.DefaultDatabaseURL+")")
	fs.IntVar(&cmd.BatchSize, "batch", books.DefaultImportBatchSize, "Rows inserted per statement")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every skipped row")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse and validate the file without writing to the database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-books [-file books.csv] [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import the book catalog from a CSV file with an isbn,title,author,year header.\n")
		fmt.Fprintf(os.Stderr, "The whole file is inserted in one transaction.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-books -file books.csv -db sqlite://./bookreviews.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import-books -file books.csv -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if cmd.BatchSize <= 0 {
		return fmt.Errorf("-batch must be positive, got %d", cmd.BatchSize)
	}
	if cmd.DatabaseURL == "" {
		cmd.DatabaseURL = config.NewConfig().Database.URL
	}
	if cmd.DatabaseURL == "" {
		cmd.DatabaseURL = config.DefaultDatabaseURL
	}

	return nil
}

func (cmd *ImportBooksCommand) Run(ctx context.Context) error {
	out := cmd.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, "Book Import")
	fmt.Fprintln(out, "===========")

	if cmd.DryRun {
		fmt.Fprintln(out, "DRY RUN MODE - No changes will be made")
		fmt.Fprintln(out)
	}

	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(out, "File: %s\n", cmd.FilePath)

	var importer importers.BookImporter
	if !cmd.DryRun {
		db, err := database.NewDatabase(cmd.DatabaseURL, database.Options{})
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		fmt.Fprintf(out, "Database: %s\n", db.Driver())
		importer = books.NewRepository(db.DB, db.Timeout())
	}

	result, err := importers.NewPipeline(importer, cmd.BatchSize).Import(ctx, file)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintln(out, "\n=== Import Summary ===")
	fmt.Fprintf(out, "Rows parsed: %d\n", result.RowsParsed)
	fmt.Fprintf(out, "Books saved: %d\n", result.BooksSaved)
	fmt.Fprintf(out, "Rows skipped: %d\n", len(result.Problems))

	if len(result.Problems) > 0 {
		if cmd.Verbose {
			for _, problem := range result.Problems {
				fmt.Fprintf(out, "  [SKIP] %s\n", problem)
			}
		} else {
			fmt.Fprintln(out, "Use -verbose to list skipped rows.")
		}
	}

	if cmd.DryRun {
		fmt.Fprintf(out, "\nDry run complete. %d books would be imported.\n", len(result.Books))
		return nil
	}

	fmt.Fprintln(out, "\nImport complete!")
	return nil
}
