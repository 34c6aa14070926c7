package clicks

import "time"

// TopicURLClicked is the topic click events are published on.
const TopicURLClicked = "url.clicked"

// Event represents a single redirect served for a short URL.
type Event struct {
	URLID     int64     `json:"urlId"`
	Code      string    `json:"code"`
	ClickedAt time.Time `json:"clickedAt"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	ClientIP  string    `json:"clientIp,omitempty"`
}
