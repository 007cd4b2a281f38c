package telegram

import (
	"time"

	tele "gopkg.in/telebot.v4"
)

const defaultLongPollTimeout = 10 * time.Second

// BuildPoller returns a long poller with the configured timeout.
func BuildPoller(timeoutSeconds int) tele.Poller {
	timeout := defaultLongPollTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &tele.LongPoller{Timeout: timeout}
}
