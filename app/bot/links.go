package bot

import (
	"fmt"
	"strings"
)

const deepLinkPrefix = "cat_"

// BuildDeepLink returns a shareable start link for a category.
func BuildDeepLink(botUsername, categoryID string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s%s", botUsername, deepLinkPrefix, categoryID)
}

// ParseStartPayload extracts a category id from a /start payload.
func ParseStartPayload(payload string) (string, bool) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, deepLinkPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(payload, deepLinkPrefix)
	if id == "" {
		return "", false
	}
	return id, true
}
