package grapherror

// Category is the main error category for graph operations
type Category string

const (
	// CategoryQuery indicates a rejected filter or path request
	CategoryQuery Category = "query"

	// CategoryLayout indicates layout computation failed
	CategoryLayout Category = "layout"

	// CategoryWebSocket indicates WebSocket connection/communication errors
	CategoryWebSocket Category = "websocket"

	// CategoryInternal indicates internal server errors
	CategoryInternal Category = "internal"
)

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// Query Subcategories
const (
	// SubcategoryInvalidSyntax indicates a textual query that could not be split or parsed
	SubcategoryInvalidSyntax = "invalid_syntax"

	// SubcategoryUnknownArtist indicates a focus or path endpoint the catalog does not hold
	SubcategoryUnknownArtist = "unknown_artist"

	// SubcategoryUnknownEra indicates an era filter outside the known eras
	SubcategoryUnknownEra = "unknown_era"

	// SubcategoryInvalidDepth indicates a negative or too large focus depth
	SubcategoryInvalidDepth = "invalid_depth"

	// SubcategoryNoPath indicates the endpoints are not connected (not necessarily an error)
	SubcategoryNoPath = "no_path"
)

// Layout Subcategories
const (
	// SubcategoryLayoutDirection indicates an unsupported rank direction
	SubcategoryLayoutDirection = "direction"

	// SubcategoryLayoutName indicates an unsupported layout name
	SubcategoryLayoutName = "name"
)

// WebSocket Subcategories
const (
	// SubcategoryWSRead indicates error reading from WebSocket
	SubcategoryWSRead = "read"

	// SubcategoryWSWrite indicates error writing to WebSocket
	SubcategoryWSWrite = "write"

	// SubcategoryWSUpgrade indicates WebSocket upgrade failed
	SubcategoryWSUpgrade = "upgrade"

	// SubcategoryWSMessage indicates an unparseable or unknown client message
	SubcategoryWSMessage = "message"
)

// Internal Subcategories
const (
	// SubcategoryInternalPanic indicates a panic was recovered
	SubcategoryInternalPanic = "panic"

	// SubcategoryInternalConfig indicates configuration error
	SubcategoryInternalConfig = "config"
)
