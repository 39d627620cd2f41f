// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: catalog reads for pages and the JSON API (internal/http/stores.go)
//   - ReviewStore: review writes, listing and aggregates (internal/http/stores.go)
//   - UserStore: account creation and lookup (internal/auth/service.go)
//   - BookImporter: bulk catalog load (internal/importers/pipeline.go)
//   - Pinger: store connectivity for /health (internal/http/stores.go)
//
// ## External Service Interfaces
//
//   - ReviewCountsFetcher: third-party review counts (internal/http/stores.go)
//   - CoverURLer: cover image URLs (internal/http/stores.go)
//
// ## Session Stores
//
// Sessions are persisted through scs.Store. The SQLite store and the in-memory store
// come from scs; auth.RedisStore implements scs.CtxStore on go-redis.
//
// # Adding a New Metadata Provider
//
//  1. Implement ReviewCountsFetcher in internal/metadata/
//
//     type OpenLibraryRatings struct {
//     httpClient *http.Client
//     }
//
//     func (c *OpenLibraryRatings) FetchReviewCounts(ctx context.Context, isbn string) (*ReviewCounts, error)
//
//  2. Add a compile-time check to checks.go
//
//  3. Pass it as RouterConfig.ReviewCounts in entrypoint.go
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct {
//     db      *gorm.DB
//     timeout time.Duration
//     }
//
//     func NewRepository(db *gorm.DB, timeout time.Duration) *Repository
//
//  3. Wrap driver errors with database.Wrap so handlers map them to 503
//
//  4. Add compile-time check:
//
//     var _ http.SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
