package model

import "time"

// NoticeModel holds one transient message that expires after its TTL.
// It is decoupled from the UI; presenters should poll Current() and update views.
// The zero value is ready to use.
type NoticeModel struct {
	text    string
	expires time.Time
}

func NewNoticeModel() *NoticeModel { return &NoticeModel{} }

// Show replaces the current notice.
func (m *NoticeModel) Show(text string, now time.Time, ttl time.Duration) {
	if m == nil {
		return
	}
	m.text = text
	m.expires = now.Add(ttl)
}

// Current returns the visible notice at now, or "" once it has expired.
func (m *NoticeModel) Current(now time.Time) string {
	if m == nil || m.text == "" {
		return ""
	}
	if !now.Before(m.expires) {
		m.text = ""
		return ""
	}
	return m.text
}
