package bot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/catalog"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/database"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/favorites"
)

// stubContext implements the slice of tele.Context the handlers touch;
// anything else panics via the nil embedded interface.
type stubContext struct {
	tele.Context
	sender   *tele.User
	callback *tele.Callback
	values   map[string]any

	sent     []any
	sentOpts [][]any
	edited   []any
	deleted  bool
}

func newStubContext(userID int64, callbackData string) *stubContext {
	s := &stubContext{
		sender: &tele.User{ID: userID},
		values: make(map[string]any),
	}
	if callbackData != "" {
		s.callback = &tele.Callback{Data: callbackData}
	}
	return s
}

func (s *stubContext) Sender() *tele.User        { return s.sender }
func (s *stubContext) Chat() *tele.Chat          { return nil }
func (s *stubContext) Callback() *tele.Callback  { return s.callback }
func (s *stubContext) Update() tele.Update       { return tele.Update{ID: 1, Callback: s.callback} }
func (s *stubContext) Get(key string) any        { return s.values[key] }
func (s *stubContext) Set(key string, value any) { s.values[key] = value }
func (s *stubContext) Delete() error             { s.deleted = true; return nil }

func (s *stubContext) Send(what any, opts ...any) error {
	s.sent = append(s.sent, what)
	s.sentOpts = append(s.sentOpts, opts)
	return nil
}

func (s *stubContext) Edit(what any, _ ...any) error {
	s.edited = append(s.edited, what)
	return nil
}

func (s *stubContext) EditOrSend(what any, opts ...any) error {
	return s.Send(what, opts...)
}

func (s *stubContext) lastMarkup(t *testing.T) *tele.ReplyMarkup {
	t.Helper()
	require.NotEmpty(t, s.sentOpts)
	for _, o := range s.sentOpts[len(s.sentOpts)-1] {
		if rm, ok := o.(*tele.ReplyMarkup); ok {
			return rm
		}
	}
	t.Fatal("no reply markup on last send")
	return nil
}

func newTestApp(t *testing.T, listings []catalog.Listing) *App {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "favorites.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))

	cat := catalog.New()
	cat.Replace(listings)

	return &App{
		catalog:   cat,
		favorites: favorites.NewStore(db),
	}
}

func sampleListings() []catalog.Listing {
	return []catalog.Listing{
		{Title: "Two bedroom", Location: "Ruiru", Bedrooms: "2", Price: 25000, URL: "https://example.com/1"},
		{Title: "Bedsitter", Location: "Juja", Bedrooms: "Bedsitter", Price: 8000, URL: "https://example.com/2"},
	}
}

func TestHandleStartEmptyCatalog(t *testing.T) {
	app := newTestApp(t, nil)
	c := newStubContext(11, "")

	require.NoError(t, app.handleStart(c))
	require.Len(t, c.sent, 1)
	assert.Equal(t, textNoListings, c.sent[0])
}

func TestHandleStartRendersSortedLocations(t *testing.T) {
	app := newTestApp(t, sampleListings())
	c := newStubContext(11, "")

	require.NoError(t, app.handleStart(c))
	require.Len(t, c.sent, 1)
	assert.Equal(t, textWelcome, c.sent[0])

	markup := c.lastMarkup(t)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "Juja", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "Ruiru", markup.InlineKeyboard[1][0].Text)
}

func TestHandleSaveStaleDigestIsSilent(t *testing.T) {
	app := newTestApp(t, sampleListings())
	c := newStubContext(11, "\\fsavefav|ffffffffffffffffffffffffffffffff")

	require.NoError(t, app.handleSave(c))
	assert.Empty(t, c.sent)
	assert.Empty(t, c.edited)

	n, err := app.favorites.Count(context.Background(), "11")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHandleSavePersistsAndConfirms(t *testing.T) {
	listings := sampleListings()
	app := newTestApp(t, listings)
	id := catalog.Identity(listings[0].URL)
	c := newStubContext(11, "\\fsavefav|"+id)

	require.NoError(t, app.handleSave(c))
	require.Len(t, c.sent, 1)
	assert.Equal(t, textSaved, c.sent[0])
	require.Len(t, c.edited, 1) // Save button cleared

	n, err := app.favorites.Count(context.Background(), "11")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHandleRemoveStaleDigestIsSilent(t *testing.T) {
	app := newTestApp(t, sampleListings())
	c := newStubContext(11, "\\fremovefav|ffffffffffffffffffffffffffffffff")

	require.NoError(t, app.handleRemove(c))
	assert.Empty(t, c.sent)
}

func TestHandleRemoveStoreFailureDegrades(t *testing.T) {
	app := newTestApp(t, sampleListings())
	require.NoError(t, app.favorites.Add(context.Background(), "11", sampleListings()[0]))

	// Force a persistence failure for the next store call.
	closeAppDB(t, app)

	id := catalog.Identity(sampleListings()[0].URL)
	c := newStubContext(11, "\\fremovefav|"+id)

	require.NoError(t, app.handleRemove(c))
	require.Len(t, c.sent, 1)
	assert.Equal(t, textError, c.sent[0])
}

func TestHandleFavoritesStoreFailureDegrades(t *testing.T) {
	app := newTestApp(t, sampleListings())
	closeAppDB(t, app)

	c := newStubContext(11, "")
	require.NoError(t, app.handleFavorites(c))
	require.Len(t, c.sent, 1)
	assert.Equal(t, textError, c.sent[0])
}

func closeAppDB(t *testing.T, app *App) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, db.Close())
	app.favorites = favorites.NewStore(db)
}
