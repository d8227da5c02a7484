package form

import (
	"time"

	"bizmate/internal/domain"
)

// drafterInitKey marks content that already received its drafter fields, so
// re-binding the same identity never re-initializes them.
const drafterInitKey = "_drafterInitialized"

// MergeContent applies a field patch over prior content with merge-on-change
// semantics: new keys are spread over the prior map and previously entered
// values for other keys are never dropped. Neither input is mutated.
func MergeContent(prior, patch domain.DocContent) domain.DocContent {
	merged := make(domain.DocContent, len(prior)+len(patch))
	for k, v := range prior {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// InitDrafterFields populates drafter name, department, and draft date from
// the acting identity exactly once. The marker key makes the operation
// idempotent across repeated binds.
func InitDrafterFields(content domain.DocContent, id domain.Identity, now time.Time) domain.DocContent {
	if content == nil {
		content = domain.DocContent{}
	}
	if done, _ := content[drafterInitKey].(bool); done {
		return content
	}
	out := MergeContent(content, domain.DocContent{
		"drafterName": id.FullName,
		"drafterDept": id.DeptName,
		"draftDate":   now.Format(dateLayout),
		drafterInitKey: true,
	})
	return out
}

// StripComputed removes the schema's computed keys from a caller-supplied
// patch so computed values can only ever come from ApplyComputed.
func StripComputed(docType domain.DocType, patch domain.DocContent) domain.DocContent {
	schema, err := Get(docType)
	if err != nil || len(schema.Computed) == 0 {
		return patch
	}
	out := make(domain.DocContent, len(patch))
	for k, v := range patch {
		out[k] = v
	}
	for _, key := range schema.Computed {
		delete(out, key)
	}
	return out
}
