package ui

import "chatwidget/internal/api"

// bootDoneMsg signals that the widget's boot sequence finished.
type bootDoneMsg struct{}

// sendResultMsg settles one in-flight send. The indicator id ties it back to
// the loading bubble it belongs to, so overlapping sends resolve in whatever
// order their responses arrive.
type sendResultMsg struct {
	indicatorID string
	resp        *api.ChatResponse
	err         error
}
