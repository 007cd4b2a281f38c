package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	if err := disp.Enqueue(ctx, action, endpoint, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "tg.sender", "queue.fallback",
				slog.String("action", action),
				slog.String("endpoint", endpoint),
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return sendAsync(c, "send.text", "sendMessage", func() error {
		if rm != nil {
			return c.Send(text, rm)
		}
		return c.Send(text)
	})
}

// SendPhoto sends a photo card with a caption and optional inline keyboard.
// Telegram fetches the image itself, so a dead image URL fails the whole
// call; the card then degrades to a plain text send of the caption with
// the same keyboard.
func SendPhoto(c tele.Context, photo *tele.Photo, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	send := func(what interface{}) error {
		if rm != nil {
			return c.Send(what, rm)
		}
		return c.Send(what)
	}
	return sendAsync(c, "send.photo", "sendPhoto", func() error {
		err := send(photo)
		if err == nil || photo.Caption == "" {
			return err
		}
		logger.Warn(BuildContext(c), "tg", "send.photo.fallback",
			slog.String("err", sender.RedactToken(err)),
		)
		return send(photo.Caption)
	})
}

// EditOrSendText tries to edit the current message in place, falling back
// to a fresh message when the original cannot be edited (e.g. a photo card).
func EditOrSendText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	if rm != nil {
		return c.EditOrSend(text, rm)
	}
	return c.EditOrSend(text)
}
