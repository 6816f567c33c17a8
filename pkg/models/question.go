package models

// Question is a single submission to the speaker. Text and author never
// change after creation; only Answer and DeletedByUser are mutable.
type Question struct {
	ID            string  `json:"id"`
	Text          string  `json:"text"`
	AuthorID      string  `json:"authorId"`
	Timestamp     int64   `json:"timestamp"` // unix milliseconds
	Answer        *string `json:"answer,omitempty"`
	DeletedByUser bool    `json:"deletedByUser"`
}

// Answered reports whether the speaker has saved an answer yet.
func (q Question) Answered() bool {
	return q.Answer != nil
}
