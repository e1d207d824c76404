package models

import (
	"time"

	"github.com/google/uuid"
)

// StoredRow is a record as persisted in the remote tabular store, tagged
// with ingestion metadata.
type StoredRow struct {
	ID         int64     `json:"id"`
	RowData    Record    `json:"row_data"`
	RowIndex   int       `json:"row_index"`
	Filename   string    `json:"filename"`
	BatchID    uuid.UUID `json:"batch_id"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadBatch is one ingestion request: an ordered sequence of flat records
// from a single source file.
type UploadBatch struct {
	BatchID    uuid.UUID `json:"batch_id"`
	Filename   string    `json:"filename"`
	Columns    []string  `json:"columns"`
	Rows       []Record  `json:"rows"`
	UploadedAt time.Time `json:"uploaded_at"`
}
