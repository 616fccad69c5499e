package models

// SequenceCounter is the atomic counter backing one named numbering
// sequence ("member", "trainer", "receipt"). Incremented with an
// upsert inside the creating transaction, so concurrent allocators for the
// same sequence serialize on this row while different sequences proceed in
// parallel.
type SequenceCounter struct {
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}
