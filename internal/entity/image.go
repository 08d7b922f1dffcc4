package entity

import "time"

// Image is the stored blob for one creature. One row per creature,
// replaced in place on re-upload.
type Image struct {
	ID          int       `json:"id"`
	CreatureID  int       `json:"creature_id"`
	Data        []byte    `json:"data"`
	ContentType string    `json:"content_type"`
	OriginalURL string    `json:"original_url,omitempty"`
	FileSize    int       `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ImageSource tells callers whether a read was served from the cache
// or from the database.
type ImageSource string

const (
	ImageSourceCache    ImageSource = "cache"
	ImageSourceDatabase ImageSource = "database"
)

// CachedImage is the envelope stored in Redis under image:<creatureID>.
// Data round-trips through base64 via encoding/json.
type CachedImage struct {
	Data        []byte    `json:"data"`
	ContentType string    `json:"content_type"`
	FileSize    int       `json:"file_size"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CacheStats reports how much of the image working set Redis holds.
type CacheStats struct {
	CachedImages int    `json:"cached_images"`
	MemoryUsed   string `json:"memory_used"`
}
