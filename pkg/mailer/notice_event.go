package mailer

import "time"

// NoticeEvent is the JSON payload put on the RabbitMQ queue when a notice is
// published to the board. The notifier worker turns it into alert emails.
type NoticeEvent struct {
	NoticeID string    `json:"notice_id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Category string    `json:"category,omitempty"`
	Date     time.Time `json:"date"`
	PostedBy string    `json:"posted_by,omitempty"` // email of the authenticated author
}
