// Package tui implements the interactive artist browser.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/spotkit/spotkit/internal/library"
	"github.com/spotkit/spotkit/internal/session"
	"github.com/spotkit/spotkit/pkg/spotify"
)

const requestTimeout = 10 * time.Second

// Config holds TUI configuration options
type Config struct {
	RefreshRate time.Duration // How often to refresh the status bar
	PageSize    int           // Results per page for searches and album listings
	Market      string        // Market sent with Spotify requests
}

// DefaultConfig returns the default TUI configuration
func DefaultConfig() Config {
	return Config{
		RefreshRate: time.Second,
		PageSize:    20,
	}
}

// App is the TUI application for browsing artists and albums
type App struct {
	app     *tview.Application
	search  *tview.InputField
	artists *tview.List
	albums  *tview.Table
	status  *tview.TextView

	config  Config
	client  *spotify.Client
	session *session.Controller
	lib     *library.Library

	// Mutex protects shared state accessed by the query goroutines and
	// the status ticker goroutine.
	mu sync.Mutex

	// Current state (guarded by mu)
	results    []spotify.Artist
	current    *spotify.Artist
	albumPage  *spotify.AlbumPage
	lastAction string

	cancelFunc context.CancelFunc
}

// New creates a new TUI application
func New(cfg Config, client *spotify.Client, ctl *session.Controller, lib *library.Library) *App {
	a := &App{
		app:     tview.NewApplication(),
		config:  cfg,
		client:  client,
		session: ctl,
		lib:     lib,
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	a.search = tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldWidth(0)
	a.search.SetBorder(true).
		SetTitle(" Artist Search ").
		SetTitleAlign(tview.AlignLeft)
	a.search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			a.runSearch(a.search.GetText())
		}
	})

	a.artists = tview.NewList().
		ShowSecondaryText(true)
	a.artists.SetBorder(true).
		SetTitle(" Artists ").
		SetTitleAlign(tview.AlignLeft)
	a.artists.SetSelectedFunc(func(index int, _ string, _ string, _ rune) {
		a.mu.Lock()
		var artist *spotify.Artist
		if index >= 0 && index < len(a.results) {
			artist = &a.results[index]
		}
		a.mu.Unlock()
		if artist != nil {
			a.loadAlbums(artist)
		}
	})

	a.albums = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.albums.SetBorder(true).
		SetTitle(" Albums ").
		SetTitleAlign(tview.AlignLeft)

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.artists, 0, 1, false).
		AddItem(a.albums, 0, 2, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.search, 3, 0, true).
		AddItem(body, 0, 1, false).
		AddItem(a.status, 1, 0, false)

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(flex, true)
}

// handleKeyEvent processes global keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyTab {
		a.cycleFocus()
		return nil
	}

	// Don't swallow characters typed into the search box
	if a.app.GetFocus() == a.search {
		return event
	}

	switch event.Rune() {
	case 'q', 'Q':
		a.app.Stop()
		return nil
	case '/':
		a.app.SetFocus(a.search)
		return nil
	case 's', 'S':
		a.saveSelectedAlbum()
		return nil
	case ']':
		a.nextAlbumPage(1)
		return nil
	case '[':
		a.nextAlbumPage(-1)
		return nil
	}
	return event
}

func (a *App) cycleFocus() {
	switch a.app.GetFocus() {
	case a.search:
		a.app.SetFocus(a.artists)
	case a.artists:
		a.app.SetFocus(a.albums)
	default:
		a.app.SetFocus(a.search)
	}
}

// Run starts the TUI. Blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, a.cancelFunc = context.WithCancel(ctx)
	defer a.cancelFunc()

	go a.watchStatus(ctx)

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// watchStatus refreshes the status bar on a single ticker. It is the only
// writer of the status line, so redraws never queue up.
func (a *App) watchStatus(ctx context.Context) {
	refreshRate := a.config.RefreshRate
	if refreshRate <= 0 {
		refreshRate = time.Second
	}
	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.app.Stop()
			return
		case <-ticker.C:
			text := a.statusLine()
			a.app.QueueUpdateDraw(func() {
				a.status.SetText(text)
			})
		}
	}
}

// statusLine renders the session state plus the last action message
func (a *App) statusLine() string {
	state := a.session.State()

	var auth string
	switch {
	case state.Loading:
		auth = "[yellow]connecting[-]"
	case state.Err != "":
		auth = "[red]" + tview.Escape(state.Err) + "[-]"
	case state.Authenticated:
		auth = fmt.Sprintf("[green]authenticated[-] (token expires in %s)",
			(time.Duration(state.TokenInfo.ExpiresIn) * time.Second).Round(time.Second))
	default:
		auth = "[red]not authenticated[-]"
	}

	a.mu.Lock()
	action := a.lastAction
	a.mu.Unlock()

	line := " " + auth + "  [gray]/:search  tab:focus  s:save album  [:prev  ]:next  q:quit[-]"
	if action != "" {
		line += "  " + tview.Escape(action)
	}
	return line
}

func (a *App) setAction(format string, args ...interface{}) {
	a.mu.Lock()
	a.lastAction = fmt.Sprintf(format, args...)
	a.mu.Unlock()
}

// runSearch queries Spotify and fills the artist list
func (a *App) runSearch(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		page, err := a.client.Search().Artists(ctx, spotify.SearchParams{
			Query:  query,
			Limit:  a.config.PageSize,
			Market: a.config.Market,
		})
		if err != nil {
			a.setAction("search failed: %v", err)
			return
		}

		a.mu.Lock()
		a.results = page.Items
		a.mu.Unlock()
		a.setAction("%d artists for %q", page.Total, query)

		a.app.QueueUpdateDraw(func() {
			a.artists.Clear()
			for _, artist := range page.Items {
				secondary := fmt.Sprintf("%d followers", artist.Followers.Total)
				if len(artist.Genres) > 0 {
					secondary += "  " + strings.Join(artist.Genres, ", ")
				}
				a.artists.AddItem(tview.Escape(artist.Name), tview.Escape(secondary), 0, nil)
			}
			a.app.SetFocus(a.artists)
		})
	}()
}

// loadAlbums fetches the first album page for the selected artist
func (a *App) loadAlbums(artist *spotify.Artist) {
	a.mu.Lock()
	a.current = artist
	a.mu.Unlock()
	a.fetchAlbums(artist, 0)
}

// nextAlbumPage pages the album table forward or backward
func (a *App) nextAlbumPage(direction int) {
	a.mu.Lock()
	artist := a.current
	page := a.albumPage
	a.mu.Unlock()
	if artist == nil || page == nil {
		return
	}

	offset := page.Offset + direction*a.config.PageSize
	if offset < 0 || offset >= page.Total {
		return
	}
	a.fetchAlbums(artist, offset)
}

func (a *App) fetchAlbums(artist *spotify.Artist, offset int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		page, err := a.client.Artists().Albums(ctx, artist.ID, spotify.AlbumParams{
			Limit:  a.config.PageSize,
			Offset: offset,
			Market: a.config.Market,
		})
		if err != nil {
			a.setAction("failed to load albums: %v", err)
			return
		}

		a.mu.Lock()
		a.albumPage = page
		a.mu.Unlock()

		a.app.QueueUpdateDraw(func() {
			a.renderAlbums(artist, page)
		})
	}()
}

// renderAlbums fills the album table. Must run on the UI goroutine.
func (a *App) renderAlbums(artist *spotify.Artist, page *spotify.AlbumPage) {
	a.albums.Clear()
	a.albums.SetTitle(fmt.Sprintf(" Albums - %s (%d-%d of %d) ",
		tview.Escape(artist.Name), page.Offset+1, page.Offset+len(page.Items), page.Total))

	headers := []string{"Name", "Type", "Released", "Tracks"}
	for col, h := range headers {
		a.albums.SetCell(0, col, tview.NewTableCell("[::b]"+h).SetSelectable(false))
	}

	for row, album := range page.Items {
		a.albums.SetCell(row+1, 0, tview.NewTableCell(tview.Escape(album.Name)).SetExpansion(1))
		a.albums.SetCell(row+1, 1, tview.NewTableCell(album.AlbumType))
		a.albums.SetCell(row+1, 2, tview.NewTableCell(album.ReleaseDate))
		a.albums.SetCell(row+1, 3, tview.NewTableCell(fmt.Sprintf("%d", album.TotalTracks)))
	}

	if len(page.Items) > 0 {
		a.albums.Select(1, 0)
	}
	a.app.SetFocus(a.albums)
}

// saveSelectedAlbum bookmarks the album under the table cursor
func (a *App) saveSelectedAlbum() {
	a.mu.Lock()
	page := a.albumPage
	artist := a.current
	a.mu.Unlock()
	if page == nil || artist == nil {
		return
	}

	row, _ := a.albums.GetSelection()
	index := row - 1 // header row
	if index < 0 || index >= len(page.Items) {
		return
	}
	album := page.Items[index]

	artistName := artist.Name
	if len(album.Artists) > 0 {
		names := make([]string, len(album.Artists))
		for i, ar := range album.Artists {
			names[i] = ar.Name
		}
		artistName = strings.Join(names, ", ")
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := a.lib.Save(ctx, library.SavedAlbum{
			ID:     album.ID,
			Name:   album.Name,
			Artist: artistName,
		})
		if err != nil {
			a.setAction("save failed: %v", err)
			return
		}
		a.setAction("saved %q", album.Name)
	}()
}
