package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	"github.com/mrlokans/bookreviews/internal/database/users"
	"github.com/mrlokans/bookreviews/internal/http"
	"github.com/mrlokans/bookreviews/internal/importers"
	"github.com/mrlokans/bookreviews/internal/metadata"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.ReviewStore = (*reviews.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ auth.UserStore = (*users.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ http.ReviewCountsFetcher = (*metadata.GoodreadsClient)(nil)
var _ http.CoverURLer = (*metadata.CoverURLBuilder)(nil)

// =============================================================================
// Sessions
// =============================================================================

var _ scs.CtxStore = (*auth.RedisStore)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

var _ importers.BookImporter = (*books.Repository)(nil)
