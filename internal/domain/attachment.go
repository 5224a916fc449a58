package domain

// AttachmentSecret carries the symmetric key material for one encrypted
// attachment. Secrets travel embedded in the encrypted message payload
// and are cached locally by attachment id; they never expire on their
// own.
type AttachmentSecret struct {
	ID          string `json:"id"`
	Key         []byte `json:"key"`
	IV          []byte `json:"iv"`
	MimeType    string `json:"mime,omitempty"`
	FileName    string `json:"name,omitempty"`
	SizeBytes   int64  `json:"size,omitempty"`
	ContentHash string `json:"hash,omitempty"`
	ThumbnailID string `json:"thumb_id,omitempty"`
	ThumbnailIV []byte `json:"thumb_iv,omitempty"`
}
