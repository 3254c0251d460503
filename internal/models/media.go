package models

// DocumentType labels an uploaded verification document.
type DocumentType string

// Accepted verification document types.
const (
	DocumentID       DocumentType = "id"
	DocumentPassport DocumentType = "passport"
	DocumentLicense  DocumentType = "license"
)

// Upload is the stored-resource descriptor returned after a media upload.
type Upload struct {
	ID      int    `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Order   int    `json:"order,omitempty"`
}
