package bot

import (
	"log/slog"
	"strconv"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/catalog"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram/callbacks"
	tghelpers "github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// storeFailed logs a favorites store failure and degrades it to an
// informational message. Handlers return nil afterwards: a persistence
// fault must never propagate into the transport dispatch loop.
func storeFailed(c tele.Context, event string, err error) error {
	logger.Error(tghelpers.BuildContext(c), "bot", event,
		slog.String("err", err.Error()),
	)
	return tghelpers.SendText(c, textError)
}

func senderID(c tele.Context) (string, bool) {
	user := c.Sender()
	if user == nil {
		return "", false
	}
	return strconv.FormatInt(user.ID, 10), true
}

// handleStart shows the location menu, or the empty-catalog notice when
// the listings file was missing or empty.
func (a *App) handleStart(c tele.Context) error {
	snap := a.catalog.Snapshot()
	if snap.Empty() {
		return tghelpers.SendText(c, textNoListings)
	}
	return tghelpers.SendText(c, textWelcome, locationMenu(snap.Locations()))
}

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendText(c, textHelp)
}

// handleFavorites sends one card per saved favorite, rendered from the
// stored snapshot so catalog reloads never change what the user saved.
func (a *App) handleFavorites(c tele.Context) error {
	uid, ok := senderID(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	records, err := a.favorites.List(ctx, uid)
	if err != nil {
		return storeFailed(c, "favorites.list.fail", err)
	}
	if len(records) == 0 {
		return tghelpers.SendText(c, textNoFavorites)
	}

	logger.Debug(ctx, "bot", "favorites.list",
		slog.Int("favorites", len(records)),
	)

	for _, r := range records {
		caption := captionForFavorite(r)
		markup := favoriteMarkup(catalog.Identity(r.URL))
		if r.ImageURL == "" {
			if err := tghelpers.SendText(c, caption, markup); err != nil {
				return err
			}
			continue
		}
		if err := a.sendCard(c, r.ImageURL, caption, markup); err != nil {
			return err
		}
	}
	return nil
}

// handleLocation answers a location button tap with the first listing at
// that location.
func (a *App) handleLocation(c tele.Context) error {
	location := callbacks.Payload(c)
	snap := a.catalog.Snapshot()

	l, ok := snap.FirstByLocation(location)
	if !ok {
		return tghelpers.EditOrSendText(c, noListingsFor(location))
	}

	caption := captionForListing(l)
	markup := listingMarkup(catalog.Identity(l.URL))
	if l.ImageURL == "" {
		return tghelpers.EditOrSendText(c, caption, markup)
	}

	// A text menu cannot be edited into a photo, so replace the message.
	_ = c.Delete()
	return a.sendCard(c, l.ImageURL, caption, markup)
}

// handleSave persists the tapped listing. A stale button whose listing
// left the catalog is ignored with a log line, not surfaced to the user.
func (a *App) handleSave(c tele.Context) error {
	uid, ok := senderID(c)
	if !ok {
		return nil
	}
	identity := callbacks.Payload(c)
	ctx := tghelpers.BuildContext(c)

	l, found := a.catalog.Snapshot().ByIdentity(identity)
	if !found {
		logger.Warn(ctx, "bot", "save.not_found",
			slog.String("listing_id", identity),
		)
		return nil
	}

	if err := a.favorites.Add(ctx, uid, l); err != nil {
		return storeFailed(c, "save.fail", err)
	}
	if a.metrics != nil {
		a.metrics.FavoriteSaved()
	}

	// Clear the Save button so the card reflects its saved state.
	_ = c.Edit(&tele.ReplyMarkup{})
	return tghelpers.SendText(c, textSaved)
}

// handleRemove deletes every saved copy of the tapped favorite.
func (a *App) handleRemove(c tele.Context) error {
	uid, ok := senderID(c)
	if !ok {
		return nil
	}
	identity := callbacks.Payload(c)
	ctx := tghelpers.BuildContext(c)

	removed, err := a.favorites.RemoveByIdentity(ctx, uid, identity)
	if err != nil {
		return storeFailed(c, "remove.fail", err)
	}
	if !removed {
		logger.Warn(ctx, "bot", "remove.not_found",
			slog.String("listing_id", identity),
		)
		return nil
	}
	if a.metrics != nil {
		a.metrics.FavoriteRemoved()
	}
	return tghelpers.EditOrSendText(c, textRemoved)
}

// handleBack returns from a listing card to the location menu.
func (a *App) handleBack(c tele.Context) error {
	snap := a.catalog.Snapshot()
	if snap.Empty() {
		return tghelpers.EditOrSendText(c, textNoListings)
	}
	return tghelpers.EditOrSendText(c, textWelcome, locationMenu(snap.Locations()))
}

func (a *App) handleUnknownText(c tele.Context) error {
	return tghelpers.SendText(c, textUnknown)
}

// sendCard sends a photo card. The helper degrades to a plain text card
// when Telegram cannot fetch the image URL.
func (a *App) sendCard(c tele.Context, imageURL, caption string, markup *tele.ReplyMarkup) error {
	photo := &tele.Photo{File: tele.FromURL(imageURL), Caption: caption}
	return tghelpers.SendPhoto(c, photo, markup)
}
