// Package validate checks content and collection drafts before they are
// handed to the record-store adapter. Rejections never reach the remote
// service or the canonical store.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/cuelens/cuelens/internal/domain"
	"github.com/cuelens/cuelens/internal/remote"
)

// imageExtensions matches common image file suffixes, query-less.
var imageExtensions = regexp.MustCompile(`\.(jpeg|jpg|gif|png|webp)$`)

// trustedImageHosts are allowed to serve thumbnails without an image
// file extension in the URL.
var trustedImageHosts = []string{
	"unsplash.com",
	"pixabay.com",
	"burst.shopify.com",
}

// Errors maps field names to human-readable problems.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "invalid draft: " + strings.Join(parts, "; ")
}

// ContentDraft validates a content submission against the category
// catalog. A nil return means the draft may be persisted.
func ContentDraft(draft remote.ContentDraft, catalog []domain.Category) error {
	errs := Errors{}

	if strings.TrimSpace(draft.Title) == "" {
		errs["title"] = "title is required"
	}

	if strings.TrimSpace(draft.URL) == "" {
		errs["url"] = "url is required"
	} else if !ValidURL(draft.URL) {
		errs["url"] = "url is not a valid URL"
	}

	if draft.Category == "" {
		errs["category"] = "category is required"
	} else if !domain.KnownCategory(catalog, draft.Category) {
		errs["category"] = fmt.Sprintf("unknown category: %s", draft.Category)
	}

	if draft.ThumbnailURL != "" && !ValidImageURL(draft.ThumbnailURL) {
		errs["thumbnailUrl"] = "thumbnail must be a valid image URL"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CollectionDraft validates a collection submission.
func CollectionDraft(draft remote.CollectionDraft) error {
	errs := Errors{}

	if strings.TrimSpace(draft.Title) == "" {
		errs["title"] = "title is required"
	}

	for i, thumb := range draft.Thumbnails {
		if !ValidImageURL(thumb) {
			errs[fmt.Sprintf("thumbnails[%d]", i)] = "must be a valid image URL"
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidURL reports whether s parses as an absolute http(s) URL.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidImageURL reports whether s is a valid URL that either ends in a
// known image extension or is served by a trusted image host.
func ValidImageURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}

	if imageExtensions.MatchString(strings.ToLower(u.Path)) {
		return true
	}

	host := strings.ToLower(u.Hostname())
	for _, trusted := range trustedImageHosts {
		if host == trusted || strings.HasSuffix(host, "."+trusted) {
			return true
		}
	}
	return false
}
