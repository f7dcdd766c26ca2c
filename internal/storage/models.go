package storage

import "time"

// DocumentRecord represents a row in the documents table. One record is
// written per successful upload, so the table doubles as an upload history.
type DocumentRecord struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Pages      int       `json:"pages"`
	Chunks     int       `json:"chunks"`
	ChunkSize  int       `json:"chunk_size"`
	Overlap    int       `json:"overlap"`
	UploadedAt time.Time `json:"uploaded_at"`
}
