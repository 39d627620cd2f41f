package importers

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mrlokans/bookreviews/internal/entities"
)

// BookImporter persists a batch of catalog books.
type BookImporter interface {
	ImportBooks(ctx context.Context, books []entities.Book, batchSize int) (int, error)
}

// ImportResult summarizes a catalog import.
type ImportResult struct {
	RowsParsed int
	BooksSaved int
	Duplicates int
	Problems   []string
	Books      []entities.Book
}

// Pipeline handles the common import workflow:
// parse → deduplicate → save.
type Pipeline struct {
	importer  BookImporter
	batchSize int
}

// NewPipeline creates a new import pipeline. A nil importer makes every import a dry run.
func NewPipeline(importer BookImporter, batchSize int) *Pipeline {
	return &Pipeline{importer: importer, batchSize: batchSize}
}

// Import parses a catalog CSV from r and saves its books.
// Rows repeating an ISBN seen earlier in the same file are dropped.
func (p *Pipeline) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	rows, problems, err := ParseBooksCSV(r)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		RowsParsed: len(rows),
		Problems:   problems,
		Books:      make([]entities.Book, 0, len(rows)),
	}

	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		if first, ok := seen[row.ISBN]; ok {
			result.Duplicates++
			result.Problems = append(result.Problems,
				fmt.Sprintf("Line %d: skipped - ISBN %s already on line %d", row.Line, row.ISBN, first))
			continue
		}
		seen[row.ISBN] = row.Line
		result.Books = append(result.Books, row.Book())
	}

	if p.importer == nil || len(result.Books) == 0 {
		return result, nil
	}

	saved, err := p.importer.ImportBooks(ctx, result.Books, p.batchSize)
	if err != nil {
		return result, fmt.Errorf("failed to save books: %w", err)
	}
	result.BooksSaved = saved

	slog.Info("catalog imported", "rows", result.RowsParsed, "saved", saved, "skipped", len(result.Problems))
	return result, nil
}
