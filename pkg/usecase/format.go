package usecase

import (
	"encoding/json"

	"github.com/a4kulshr/github-navigator/pkg/domain/model"
)

// DecodeExtraction parses a model-returned extraction value into the
// loosely-typed payload. Code fences are tolerated the same way action
// responses are.
func DecodeExtraction(raw string) (*model.ExtractionPayload, bool) {
	cleaned := StripCodeFence(raw)
	if cleaned == "" {
		return nil, false
	}
	var payload model.ExtractionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, false
	}
	return &payload, true
}

// FormatRelease maps an extraction payload onto the canonical report shape.
// Field synonyms are resolved in order (version before tag_name, tag before
// commit); anything still empty becomes the "unknown" sentinel. Optional
// fields pass through untouched so absent values serialize as null.
func FormatRelease(payload *model.ExtractionPayload, repository string) *model.ReleaseReport {
	repo := repository
	if repo == "" {
		repo = payload.Repository
	}

	return &model.ReleaseReport{
		Repository: orUnknown(repo),
		LatestRelease: &model.ReleaseInfo{
			Version:       orUnknown(firstNonEmpty(payload.Version, payload.TagName)),
			Tag:           orUnknown(firstNonEmpty(payload.Tag, payload.Commit)),
			Author:        orUnknown(payload.Author),
			ReleaseNotes:  payload.ReleaseNotes,
			PublishDate:   payload.PublishDate,
			DownloadLinks: payload.DownloadLinks,
		},
	}
}

// RawReport wraps an extraction value that could not be decoded as JSON
func RawReport(value string) *model.ReleaseReport {
	return &model.ReleaseReport{RawData: value}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func orUnknown(v string) string {
	if v == "" {
		return model.UnknownField
	}
	return v
}
