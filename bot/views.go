package bot

import (
	"fmt"
	"strconv"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/catalog"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram/keyboard"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/favorites"

	tele "gopkg.in/telebot.v4"
)

const (
	textWelcome     = "🏡 Welcome! Select a location:"
	textNoListings  = "Sorry, no listings available."
	textNoFavorites = "⭐ You have no favorites yet."
	textSaved       = "✅ Saved to favorites."
	textRemoved     = "❌ Removed from favorites."
	textUnknown     = "Use /start to begin."
	textError       = "⚠️ Something went wrong, try again."

	textHelp = "ℹ️ Commands:\n" +
		"/start - Browse listings\n" +
		"/favorites - View your saved listings\n" +
		"/help - Show this help"
)

// Callback action keys carried in inline button payloads.
const (
	cbLocation  = "location"
	cbSaveFav   = "savefav"
	cbRemoveFav = "removefav"
	cbBack      = "back"
)

// listingCaption renders the four-line card shared by browse results and
// saved favorites. Price arrives as a string because favorites store it
// denormalized.
func listingCaption(title, price, bedrooms, location, url string) string {
	return fmt.Sprintf("%s\n💲 %s | 🛏 %s\n📍 %s\n🔗 %s", title, price, bedrooms, location, url)
}

func captionForListing(l catalog.Listing) string {
	return listingCaption(l.Title, strconv.Itoa(l.Price), l.Bedrooms, l.Location, l.URL)
}

func captionForFavorite(r favorites.Record) string {
	return listingCaption(r.Title, r.Price, r.Bedrooms, r.Location, r.URL)
}

func noListingsFor(location string) string {
	return fmt.Sprintf("No listings found for %s.", location)
}

// locationMenu builds the keyboard shown by /start: one button per
// distinct location, each carrying the exact location name as payload.
func locationMenu(locations []string) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(locations))
	for _, loc := range locations {
		rows = append(rows, []keyboard.InlineBtn{{Text: loc, Unique: cbLocation, Data: loc}})
	}
	return keyboard.InlineButtonsRows(rows...)
}

// listingMarkup attaches Save and Back to a browsed listing card.
func listingMarkup(identity string) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "⭐ Save", Unique: cbSaveFav, Data: identity}},
		[]keyboard.InlineBtn{{Text: "⬅️ Back", Unique: cbBack}},
	)
}

// favoriteMarkup attaches Remove to a saved favorite card.
func favoriteMarkup(identity string) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "❌ Remove", Unique: cbRemoveFav, Data: identity},
	})
}
