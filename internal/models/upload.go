package models

// ImageFile is a cover image picked in the article form, not yet hosted.
type ImageFile struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"` // base64 in JSON
}

// UploadedFile is one entry of the upload endpoint's response array.
type UploadedFile struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	URL  string  `json:"url"`
	Mime string  `json:"mime"`
	Size float64 `json:"size"`
}
