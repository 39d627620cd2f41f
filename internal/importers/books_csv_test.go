package importers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBooksCSV(t *testing.T) {
	t.Run("reorders columns by header and trims values", func(t *testing.T) {
		input := "Title, Year ,ISBN,Author\n  The Hobbit ,1937, 0547928227 ,J.R.R. Tolkien\n"

		rows, problems, err := ParseBooksCSV(strings.NewReader(input))

		require.NoError(t, err)
		assert.Empty(t, problems)
		require.Len(t, rows, 1)
		assert.Equal(t, BookRow{Line: 2, ISBN: "0547928227", Title: "The Hobbit", Author: "J.R.R. Tolkien", Year: 1937}, rows[0])
	})

	t.Run("strips a byte order mark", func(t *testing.T) {
		input := "\ufeffisbn,title,author,year\n0547928227,The Hobbit,J.R.R. Tolkien,1937\n"

		rows, _, err := ParseBooksCSV(strings.NewReader(input))

		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("skips malformed rows and reports them", func(t *testing.T) {
		input := strings.Join([]string{
			"isbn,title,author,year",
			"0547928227,The Hobbit,J.R.R. Tolkien,1937",
			",Untitled ISBN,Nobody,2000",
			"0000000001,,Nobody,2000",
			"0000000002,Bad Year,Nobody,MMXX",
			"0000000003,Short Row",
		}, "\n")

		rows, problems, err := ParseBooksCSV(strings.NewReader(input))

		require.NoError(t, err)
		assert.Len(t, rows, 1)
		require.Len(t, problems, 4)
		assert.Contains(t, problems[0], "Line 3")
		assert.Contains(t, problems[2], "invalid year")
	})

	t.Run("missing header is fatal", func(t *testing.T) {
		_, _, err := ParseBooksCSV(strings.NewReader("isbn,title,author\n1,2,3\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required header: year")
	})

	t.Run("empty file is fatal", func(t *testing.T) {
		_, _, err := ParseBooksCSV(strings.NewReader(""))

		assert.Error(t, err)
	})
}
