// Package importers loads the book catalog from CSV files.
//
// # Architecture
//
// The import flow is:
//
//	CSV file → ParseBooksCSV → BookRow → Pipeline → entities.Book → BookImporter → Storage
//
// ParseBooksCSV reads an isbn,title,author,year file and reports malformed lines
// without failing the whole file. The Pipeline deduplicates rows by ISBN and hands
// the books to a BookImporter, normally the books repository, which inserts them in
// a single transaction.
//
// # Example Usage
//
//	pipeline := importers.NewPipeline(books.NewRepository(db.DB, db.Timeout()), 500)
//	result, err := pipeline.Import(ctx, file)
package importers
