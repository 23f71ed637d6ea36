package domain

import "time"

// QuestionStatus tracks whether a website question has been answered.
type QuestionStatus string

const (
	QuestionStatusNew       QuestionStatus = "new"
	QuestionStatusResponded QuestionStatus = "responded"
)

// Question is an enquiry submitted through the website form.
type Question struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Question    string         `json:"question"`
	Status      QuestionStatus `json:"status"`
	Response    string         `json:"response,omitempty"`
	RespondedAt *time.Time     `json:"respondedAt,omitempty"`
	IPAddress   string         `json:"ipAddress,omitempty"`
	Country     string         `json:"country,omitempty"`
	CreatedAt   time.Time      `json:"timestamp"`
}

// Responded reports whether the question has transitioned to responded.
func (q *Question) Responded() bool {
	return q != nil && q.Status == QuestionStatusResponded
}

// QuestionStats summarises the question backlog.
type QuestionStats struct {
	Total     int `json:"total"`
	New       int `json:"new"`
	Responded int `json:"responded"`
	ThisMonth int `json:"thisMonth"`
}

// QuestionCursor marks a position in creation order. The zero value sorts
// before every question.
type QuestionCursor struct {
	CreatedAt time.Time
	ID        string
}

// After reports whether q sorts strictly after the cursor.
func (c QuestionCursor) After(q Question) bool {
	if q.CreatedAt.Equal(c.CreatedAt) {
		return q.ID > c.ID
	}
	return q.CreatedAt.After(c.CreatedAt)
}

// Advance moves the cursor to q.
func (c QuestionCursor) Advance(q Question) QuestionCursor {
	return QuestionCursor{CreatedAt: q.CreatedAt, ID: q.ID}
}
