// Package urls maps domain objects to their detail-page references.
package urls

import "fmt"

var detailPaths = map[string]string{
	"lead":         "/leads/%d",
	"task":         "/tasks/%d",
	"order":        "/orders/%d",
	"product":      "/products/%d",
	"agent":        "/agents/%d",
	"organisor":    "/organisors/%d",
	"organisation": "/organisations/%d",
}

// Detail returns the detail-page path for an object, or "" when the object
// type is unknown or the id is missing. Callers render "no link" for "".
func Detail(objectType string, objectID int64) string {
	if objectID == 0 {
		return ""
	}
	pattern, ok := detailPaths[objectType]
	if !ok {
		return ""
	}
	return fmt.Sprintf(pattern, objectID)
}
