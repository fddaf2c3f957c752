package grapherror

import "fmt"

var defaultMessages = map[Category]string{
	CategoryQuery:     "The graph query was rejected - check the filter and try again",
	CategoryLayout:    "Failed to lay out the influence graph",
	CategoryWebSocket: "Connection error - attempting to reconnect...",
	CategoryInternal:  "An internal error occurred - please try again",
}

// ToUIMessage converts the error to a user-friendly message suitable for UI display
func (e *GraphError) ToUIMessage() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	return e.defaultMessageForCategory()
}

func (e *GraphError) defaultMessageForCategory() string {
	if msg, ok := defaultMessages[e.Category]; ok {
		return msg
	}
	return "An error occurred"
}

// ToGraphMeta formats the error for inclusion in graph metadata
func (e *GraphError) ToGraphMeta() map[string]string {
	meta := map[string]string{
		"error":       e.Error(),
		"category":    string(e.Category),
		"description": e.ToUIMessage(),
		"timestamp":   e.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}

	if e.Subcategory != "" {
		meta["subcategory"] = e.Subcategory
	}

	if len(e.Context) > 0 {
		meta["context"] = fmt.Sprintf("%v", e.Context)
	}

	return meta
}

// ToLogFields converts error to structured log fields for logger.Errorw()
func (e *GraphError) ToLogFields() []interface{} {
	fields := []interface{}{
		"error_category", e.Category,
		"error_message", e.Error(),
		"user_message", e.UserMessage,
	}

	if e.Subcategory != "" {
		fields = append(fields, "error_subcategory", e.Subcategory)
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// IsCategory checks if the error matches a specific category
func (e *GraphError) IsCategory(cat Category) bool {
	return e.Category == cat
}

// IsSubcategory checks if the error matches a specific subcategory
func (e *GraphError) IsSubcategory(sub string) bool {
	return e.Subcategory == sub
}
