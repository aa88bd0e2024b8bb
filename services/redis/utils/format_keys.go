package utils

/**
 * Key formatting for the Redis (key, value) pairs, so the key layout
 * lives in one place.
 */

import "fmt"

func FormatCatalogKey(source string) string {
	return fmt.Sprintf("catalog:%s", source)
}

// Key holding the LoadedAt of the current snapshot
func FormatCatalogStampKey(source string) string {
	return fmt.Sprintf("catalog:%s:stamp", source)
}
