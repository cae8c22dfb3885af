package utils

import (
	"fmt"
	"strings"
)

// GetPrettyURLWithBase joins baseRoute and url, tolerating a trailing slash on the base
func GetPrettyURLWithBase(baseRoute, url string) string {
	return fmt.Sprintf("%s%s", strings.TrimRight(baseRoute, "/"), url)
}
