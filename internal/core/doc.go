// Package core holds the TradeScout customer domain.
//
// It has no transport or storage dependencies and is shared by the
// persistence gateway, the cache, the import/export pipelines and the web
// layer.
//
// # Records
//
// [Record] is the single entity: a prospective trade customer. [Input] is the
// form payload used to create or overwrite one. Updates are full-record
// replacements; there is no partial update.
//
// # Validation
//
// [ValidateInput] is the shared check run at every boundary that accepts
// customer data: the entry form, the gateway and the importer. It enforces
// required fields, the website pattern and the enumerated values.
// [ValidateEntry] additionally checks country and sector against the
// [Catalog] and is only used at entry time.
//
// # Search
//
// [SearchFilters] describes a conjunctive filter. [SearchFilters.Match] is
// the in-memory predicate; the Postgres gateway compiles the same filter to
// SQL.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - DB001-DB005: store connectivity and lookups
//   - VAL001-VAL006: record validation
//   - FILE001-FILE007: import files
//   - IMP001: import concurrency
//   - AI001-AI002: text-generation providers
//   - REQ001-REQ003: request lifecycle
//   - RATE001: rate limiting
package core
