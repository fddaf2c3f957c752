package grapherror

import (
	"time"

	"github.com/teranos/jazzgraph/errors"
)

// GraphError is an error in the graph system with structured context
type GraphError struct {
	Err         error                  // Underlying error
	Category    Category               // Main category
	Subcategory string                 // Optional subcategory
	UserMessage string                 // User-friendly message for UI display
	Context     map[string]interface{} // Additional context for debugging
	Timestamp   time.Time              // When the error occurred
}

// Error implements the error interface
func (e *GraphError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMessage
}

// Unwrap returns the underlying error for errors.Is/As compatibility
func (e *GraphError) Unwrap() error {
	return e.Err
}

// New creates a GraphError with the specified category and messages
func New(category Category, err error, userMsg string) *GraphError {
	return &GraphError{
		Err:         err,
		Category:    category,
		UserMessage: userMsg,
		Context:     make(map[string]interface{}),
		Timestamp:   time.Now(),
	}
}

// Newf creates a GraphError with a formatted underlying error
func Newf(category Category, userMsg, format string, args ...interface{}) *GraphError {
	return New(category, errors.Newf(format, args...), userMsg)
}

// UnknownArtist reports an artist id the catalog does not hold.
// The underlying error wraps errors.ErrNotFound.
func UnknownArtist(id string) *GraphError {
	return New(CategoryQuery, errors.NewNotFoundError("unknown artist %q", id), "No artist with id "+id).
		WithSubcategory(SubcategoryUnknownArtist).
		WithContext("artist", id)
}

// Invalid reports a rejected query parameter.
// The underlying error wraps errors.ErrInvalidRequest.
func Invalid(category Category, sub, userMsg, format string, args ...interface{}) *GraphError {
	return New(category, errors.NewInvalidRequestError(format, args...), userMsg).WithSubcategory(sub)
}

// WithSubcategory adds a subcategory to the error
func (e *GraphError) WithSubcategory(sub string) *GraphError {
	e.Subcategory = sub
	return e
}

// WithContext adds a context key-value pair for debugging
func (e *GraphError) WithContext(key string, value interface{}) *GraphError {
	e.Context[key] = value
	return e
}

// WithContextMap adds multiple context key-value pairs
func (e *GraphError) WithContextMap(ctx map[string]interface{}) *GraphError {
	for k, v := range ctx {
		e.Context[k] = v
	}
	return e
}

// As extracts a *GraphError from err's chain
func As(err error) (*GraphError, bool) {
	var ge *GraphError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
