package entity

import "io"

// StoredObject is one uploaded image as handed back by the object store.
// ContentType is whatever was recorded at upload time and may be empty when
// the uploader declared none. Body must be closed by the consumer.
type StoredObject struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}
