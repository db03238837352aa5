package model

// UnknownField is the sentinel for release fields the model could not read
const UnknownField = "unknown"

// ReleaseInfo is the canonical release metadata shape. Optional fields stay
// nil and serialize as null rather than being omitted.
type ReleaseInfo struct {
	Version       string   `json:"version"`
	Tag           string   `json:"tag"`
	Author        string   `json:"author"`
	ReleaseNotes  *string  `json:"release_notes"`
	PublishDate   *string  `json:"publish_date"`
	DownloadLinks []string `json:"download_links"`
}

// ReleaseReport is the process output document. When the extraction payload
// could not be decoded as JSON, only RawData is populated.
type ReleaseReport struct {
	Repository    string       `json:"repository,omitempty"`
	LatestRelease *ReleaseInfo `json:"latest_release,omitempty"`
	RawData       string       `json:"raw_data,omitempty"`
}

// ExtractionPayload is the loosely-typed record a vision model returns when
// asked to extract release metadata. Field names vary between responses
// (version vs tag_name, tag vs commit), so every accepted synonym has a slot
// and the output formatter picks the first non-empty one.
type ExtractionPayload struct {
	Repository    string   `json:"repository"`
	Version       string   `json:"version"`
	TagName       string   `json:"tag_name"`
	Tag           string   `json:"tag"`
	Commit        string   `json:"commit"`
	Author        string   `json:"author"`
	ReleaseNotes  *string  `json:"release_notes"`
	PublishDate   *string  `json:"publish_date"`
	DownloadLinks []string `json:"download_links"`
	Found         bool     `json:"found"`
}
