package article

import (
	"fmt"
	"strings"

	"blog/internal/domain/entity"
	"blog/internal/domain/validation"
)

// Form field names.
const (
	FieldTitle       = "title"
	FieldStatus      = "status"
	FieldPublishedAt = "published_at"
	FieldAuthorID    = "author_id"
)

// FormSchema is the article form rule set. Field rules run in declaration
// order; the publish-date requirement runs last and only when status and
// published_at both passed their own checks.
var FormSchema = validation.Schema[entity.ArticleAttributes]{
	Fields: []validation.FieldRule[entity.ArticleAttributes]{
		{Field: FieldTitle, Check: checkTitle},
		{Field: FieldStatus, Check: checkStatus},
		{Field: FieldPublishedAt, Check: checkPublishedAt},
		{Field: FieldAuthorID, Check: checkAuthorID},
	},
	Cross: []validation.CrossRule[entity.ArticleAttributes]{
		{
			Field:     FieldPublishedAt,
			DependsOn: []string{FieldStatus},
			Check:     requirePublishedAtWhenPublished,
		},
	},
}

// ValidateForm validates raw article input and returns sanitized attributes or field errors.
func ValidateForm(in validation.Input) validation.Result[entity.ArticleAttributes] {
	return FormSchema.Validate(in)
}

func checkTitle(in validation.Input, out *entity.ArticleAttributes) *validation.FieldError {
	v, ok := in.Filled(FieldTitle)
	if !ok {
		return &validation.FieldError{Kind: validation.KindMissingField, Message: "title is required"}
	}
	s, isString := v.(string)
	title := strings.TrimSpace(s)
	if !isString || title == "" {
		return &validation.FieldError{Kind: validation.KindMissingField, Message: "title is required"}
	}
	out.Title = title
	return nil
}

func checkStatus(in validation.Input, out *entity.ArticleAttributes) *validation.FieldError {
	v, ok := in.Filled(FieldStatus)
	if !ok {
		return &validation.FieldError{Kind: validation.KindMissingField, Message: "status is required"}
	}
	var raw string
	switch s := v.(type) {
	case string:
		raw = strings.TrimSpace(s)
	case entity.ArticleStatus:
		raw = string(s)
	}
	status, valid := entity.ParseArticleStatus(raw)
	if !valid {
		return &validation.FieldError{
			Kind:    validation.KindInvalidEnumValue,
			Message: fmt.Sprintf("status must be one of %s", statusList()),
		}
	}
	out.Status = status
	return nil
}

func checkPublishedAt(in validation.Input, out *entity.ArticleAttributes) *validation.FieldError {
	v, ok := in.Filled(FieldPublishedAt)
	if !ok {
		// Without a status the requirement cannot be ruled out.
		if _, hasStatus := in.Filled(FieldStatus); !hasStatus {
			return &validation.FieldError{Kind: validation.KindMissingField, Message: "published_at is required for published articles"}
		}
		return nil
	}
	t, parsed := validation.ParseDate(v)
	if !parsed {
		return &validation.FieldError{Kind: validation.KindInvalidDateFormat, Message: "published_at must be a date (YYYY-MM-DD or RFC 3339)"}
	}
	stored := entity.StoredTime(t)
	out.PublishedAt = &stored
	return nil
}

func checkAuthorID(in validation.Input, out *entity.ArticleAttributes) *validation.FieldError {
	v, ok := in.Filled(FieldAuthorID)
	if !ok {
		return nil
	}
	id, parsed := validation.ParseID(v)
	if !parsed {
		return &validation.FieldError{Kind: validation.KindInvalidReference, Message: "author_id must be a positive integer"}
	}
	out.AuthorID = &id
	return nil
}

func requirePublishedAtWhenPublished(_ validation.Input, out entity.ArticleAttributes) *validation.FieldError {
	if out.Status == entity.StatusPublished && out.PublishedAt == nil {
		return &validation.FieldError{
			Kind:    validation.KindConditionalRequired,
			Message: "published_at is required when status is published",
		}
	}
	return nil
}

func statusList() string {
	statuses := entity.ArticleStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
