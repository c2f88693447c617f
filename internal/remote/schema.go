package remote

import (
	"encoding/json"
	"time"
)

// Table names from the record store schema.
const (
	ContentTable    = "content_item"
	CollectionTable = "collection"
)

// Remote field names. The record store owns this naming convention; the
// mapping to internal entity fields lives in the row types below and must
// be preserved exactly.
const (
	FieldID           = "Id"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldURL          = "url"
	FieldThumbnailURL = "thumbnail_url"
	FieldCategory     = "category"
	FieldLikes        = "likes"
	FieldComments     = "comments"
	FieldIsSaved      = "is_saved"
	FieldIsLiked      = "is_liked"
	FieldThumbnails   = "thumbnails"
	FieldItemCount    = "item_count"
	FieldIsPublic     = "is_public"
	FieldUpdatedAt    = "updated_at"
	FieldCreatedOn    = "CreatedOn"
)

// recordID tolerates the record store issuing either numeric or string
// identifiers; internally identity is always a string.
type recordID string

func (r *recordID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = recordID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = recordID(n.String())
	return nil
}

// contentRow is the content_item table row shape.
type contentRow struct {
	ID           recordID  `json:"Id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Category     string    `json:"category"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	IsSaved      bool      `json:"is_saved"`
	IsLiked      bool      `json:"is_liked"`
	CreatedOn    time.Time `json:"CreatedOn"`
}

// collectionRow is the collection table row shape. Thumbnails arrive as
// JSON-encoded text, not as a JSON array.
type collectionRow struct {
	ID          recordID  `json:"Id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnails  string    `json:"thumbnails"`
	ItemCount   int       `json:"item_count"`
	IsPublic    bool      `json:"is_public"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EncodeThumbnails serializes an ordered thumbnail list to the encoded
// text form the record store expects. Nil encodes as the empty list.
func EncodeThumbnails(thumbnails []string) string {
	if thumbnails == nil {
		thumbnails = []string{}
	}
	data, err := json.Marshal(thumbnails)
	if err != nil {
		// []string cannot fail to marshal; keep the contract total anyway.
		return "[]"
	}
	return string(data)
}

// DecodeThumbnails parses the encoded text form back into an ordered
// list. Absent or malformed input decodes to the empty list so one bad
// row never poisons a whole fetch.
func DecodeThumbnails(encoded string) []string {
	if encoded == "" {
		return []string{}
	}
	var thumbnails []string
	if err := json.Unmarshal([]byte(encoded), &thumbnails); err != nil {
		return []string{}
	}
	if thumbnails == nil {
		return []string{}
	}
	return thumbnails
}
