package models

// ErrorResponse is the JSON body written by API routes on failure.
// The fetch route never uses it: it answers with plain text only.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ImageResponse is the JSON view of a record returned by the API.
type ImageResponse struct {
	ImageRecord

	// PresentationURL is the API path that renders fresh markup for the record.
	PresentationURL string `json:"presentation_url"`
}

// BuildInfo describes the running server binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Date      string `json:"date"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`

	// TokenTTLSeconds is how long freshly issued layer URLs stay valid.
	TokenTTLSeconds float64 `json:"token_ttl_seconds"`
}
