package diag

// template defines a registered diagnostic.
type template struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps diagnostic codes to their templates. Messages may carry
// fmt verbs filled by New's variadic arguments.
var registry = map[string]template{
	// ============================================
	// Runtime (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryRuntime,
		Message:  "circular dependency in memo %v",
		Detail:   "A memo's compute function read the memo itself, directly or through other memos. The dependency graph must stay acyclic.",
		DocURL:   "https://neoflux.dev/docs/errors/R001",
	},
	"R002": {
		Category: CategoryRuntime,
		Message:  "write to a disposed signal ignored",
		Detail:   "The signal's owning scope has been disposed. Disposed writes are no-ops so teardown code racing disposal does not crash; this diagnostic only appears in debug logging.",
		DocURL:   "https://neoflux.dev/docs/errors/R002",
	},
	"R003": {
		Category: CategoryRuntime,
		Message:  "action queue is full",
		Detail:   "A Run call arrived while the action's queue was at capacity. Raise the queue bound or switch the action to CancelLatest.",
		DocURL:   "https://neoflux.dev/docs/errors/R003",
	},
	"R004": {
		Category: CategoryStore,
		Message:  "invalid store path %q",
		Detail:   "Store paths are dot-separated, non-empty segments, e.g. \"user.profile.name\". Empty paths and empty segments are rejected.",
		DocURL:   "https://neoflux.dev/docs/errors/R004",
	},
	"R005": {
		Category: CategoryRuntime,
		Message:  "update storm: effects did not settle",
		Detail:   "A single flush exceeded its run budget, which means an effect keeps writing a signal it also depends on. Break the feedback loop with Untracked or restructure the graph.",
		DocURL:   "https://neoflux.dev/docs/errors/R005",
	},
	"R006": {
		Category: CategoryRuntime,
		Message:  "resource fetch failed: %v",
		Detail:   "The resource fetcher returned an error. The failure is captured into the resource's error state; previous data is retained until the next successful fetch.",
		DocURL:   "https://neoflux.dev/docs/errors/R006",
	},

	// ============================================
	// Configuration (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "neoflux.json not found",
		Detail:   "No neoflux.json was found in this directory or any parent. Commands that need project configuration fall back to defaults.",
		DocURL:   "https://neoflux.dev/docs/errors/C001",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "neoflux.json is not valid JSON",
		Detail:   "The configuration file could not be parsed.",
		DocURL:   "https://neoflux.dev/docs/errors/C002",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "invalid configuration: %v",
		Detail:   "One or more configuration fields failed validation.",
		DocURL:   "https://neoflux.dev/docs/errors/C003",
	},

	// ============================================
	// Persistence (P001-P099)
	// ============================================

	"P001": {
		Category: CategoryPersist,
		Message:  "snapshot %q not found",
		Detail:   "The requested snapshot key does not exist in the configured backend.",
		DocURL:   "https://neoflux.dev/docs/errors/P001",
	},
	"P002": {
		Category: CategoryPersist,
		Message:  "snapshot backend %q is not supported",
		Detail:   "Supported backends are \"dir\" and \"s3\".",
		DocURL:   "https://neoflux.dev/docs/errors/P002",
	},
}

// Register adds a template at runtime. Used by tests and by embedders
// that ship their own diagnostics; registering an existing code replaces
// it.
func Register(code string, category Category, message, detail, docURL string) {
	registry[code] = template{
		Category: category,
		Message:  message,
		Detail:   detail,
		DocURL:   docURL,
	}
}
