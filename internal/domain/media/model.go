package media

import "time"

// Media represents one uploaded asset. The blob lives in the storage
// backend; this row is the metadata.
type Media struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	FileName    string    `json:"fileName"`
	ObjectKey   string    `json:"-"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}
