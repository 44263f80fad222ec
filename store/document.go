package store

import "time"

// Document is the stored form of one extent.
type Document[T any] struct {
	Extent  string    `yaml:"extent" json:"extent" bson:"extent"`
	SavedAt time.Time `yaml:"saved_at" json:"saved_at" bson:"saved_at"`
	Records []T       `yaml:"records" json:"records" bson:"records"`
}

// Rows is how a Backend sees a Document. File backends encode the document
// as a whole; row-oriented backends walk it record by record.
type Rows interface {
	// Name returns the extent name the document is stored under.
	Name() string

	// Len returns the number of records.
	Len() int

	// Row returns a pointer to the i-th record.
	Row(i int) any

	// Saved returns when the snapshot was taken.
	Saved() time.Time

	// SetSaved records when a snapshot being read was taken.
	SetSaved(t time.Time)

	// Append decodes one more record through decode, which receives a pointer
	// to a zero record.
	Append(decode func(v any) error) error
}

var _ Rows = (*Document[struct{}])(nil)

func (d *Document[T]) Name() string         { return d.Extent }
func (d *Document[T]) Len() int             { return len(d.Records) }
func (d *Document[T]) Row(i int) any        { return &d.Records[i] }
func (d *Document[T]) Saved() time.Time     { return d.SavedAt }
func (d *Document[T]) SetSaved(t time.Time) { d.SavedAt = t }

func (d *Document[T]) Append(decode func(v any) error) error {
	var rec T
	if err := decode(&rec); err != nil {
		return err
	}
	d.Records = append(d.Records, rec)
	return nil
}
