package entity

// ArticleStatus is the lifecycle state of an article.
type ArticleStatus string

// The closed set of article statuses. Nothing outside this set is ever persisted.
const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

// ArticleStatuses returns every allowed status in declaration order.
// A fresh slice is returned on each call.
func ArticleStatuses() []ArticleStatus {
	return []ArticleStatus{StatusDraft, StatusPublished}
}

// ParseArticleStatus converts raw input into an ArticleStatus.
// The second return value is false when s is not a member of the status set.
func ParseArticleStatus(s string) (ArticleStatus, bool) {
	status := ArticleStatus(s)
	return status, status.IsValid()
}

// IsValid reports whether s is a member of the status set.
func (s ArticleStatus) IsValid() bool {
	for _, allowed := range ArticleStatuses() {
		if s == allowed {
			return true
		}
	}
	return false
}

func (s ArticleStatus) String() string {
	return string(s)
}
