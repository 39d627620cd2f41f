package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrlokans/bookreviews/internal/entities"
)

// BookRow represents a single row of a catalog CSV file.
type BookRow struct {
	Line   int
	ISBN   string
	Title  string
	Author string
	Year   int
}

// Book converts the row to the catalog entity.
func (r BookRow) Book() entities.Book {
	return entities.Book{
		ISBN:   r.ISBN,
		Title:  r.Title,
		Author: r.Author,
		Year:   r.Year,
	}
}

var requiredHeaders = []string{"isbn", "title", "author", "year"}

// ParseBooksCSV parses a catalog file with an isbn,title,author,year header.
// Header names are case-insensitive and may appear in any order.
// Returns the parsed rows, the per-line problems that caused rows to be skipped,
// and a fatal error when the header is unusable.
func ParseBooksCSV(r io.Reader) ([]BookRow, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerIndex := make(map[string]int)
	for i, h := range header {
		// Strip a UTF-8 BOM left by spreadsheet exports
		headerIndex[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	for _, h := range requiredHeaders {
		if _, ok := headerIndex[h]; !ok {
			return nil, nil, fmt.Errorf("missing required header: %s", h)
		}
	}

	var rows []BookRow
	var problems []string
	lineNum := 1 // Start at 1 because we already read the header

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			problems = append(problems, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}

		row := BookRow{
			Line:   lineNum,
			ISBN:   getCSVValue(record, headerIndex, "isbn"),
			Title:  getCSVValue(record, headerIndex, "title"),
			Author: getCSVValue(record, headerIndex, "author"),
		}

		if row.ISBN == "" || row.Title == "" {
			problems = append(problems, fmt.Sprintf("Line %d: skipped - missing isbn or title", lineNum))
			continue
		}

		year := getCSVValue(record, headerIndex, "year")
		row.Year, err = strconv.Atoi(year)
		if err != nil {
			problems = append(problems, fmt.Sprintf("Line %d: skipped - invalid year %q", lineNum, year))
			continue
		}

		rows = append(rows, row)
	}

	return rows, problems, nil
}

func getCSVValue(record []string, headerIndex map[string]int, header string) string {
	if idx, ok := headerIndex[header]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
