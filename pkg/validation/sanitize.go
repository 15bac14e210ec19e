package validation

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	contentPolicyOnce sync.Once
	contentPolicyInst *bluemonday.Policy
)

func contentPolicy() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		contentPolicyInst = bluemonday.UGCPolicy()
	})
	return contentPolicyInst
}

// altered reports whether sanitizing content removes anything. Entity
// escaping alone does not count.
func altered(sanitizer Sanitizer, content string) bool {
	original := strings.TrimSpace(content)
	if original == "" {
		return false
	}
	cleaned := strings.TrimSpace(sanitizer.Sanitize(original))
	return html.UnescapeString(cleaned) != html.UnescapeString(original)
}
