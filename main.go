package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/serenemind/serene/internal/affirmation"
	"github.com/serenemind/serene/internal/catalog"
	"github.com/serenemind/serene/internal/channel"
	"github.com/serenemind/serene/internal/config"
	"github.com/serenemind/serene/internal/history"
	"github.com/serenemind/serene/internal/notify"
	"github.com/serenemind/serene/internal/transport"
	"github.com/serenemind/serene/internal/ui/playerbar"
)

const (
	catalogTimeout = 15 * time.Second
	seekStep       = 10 * time.Second
	volumeStep     = 0.05
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Padding(0, 1)

	listItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("75")).
				Bold(true).
				Padding(0, 1)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)
)

type catalogMsg struct {
	playlists []affirmation.Playlist
	music     []affirmation.BackgroundMusic
	err       error
}

type clipsMsg struct {
	playlist affirmation.Playlist
	clips    []affirmation.Affirmation
	err      error
}

type playbackMsg struct{}

type playbackErrMsg struct{ message string }

type toastMsg notify.Toast

type toastExpiredMsg struct{}

type subClosedMsg struct{}

type model struct {
	svc    transport.Service
	sub    *transport.Subscription
	toasts *notify.Sink
	client *catalog.Client
	store  *history.Store

	playlists []affirmation.Playlist
	music     []affirmation.BackgroundMusic
	musicIdx  int // index into music; -1 means no bed selected

	cursor  int
	loading bool
	toast   string
	width   int
	height  int
}

func initialModel() (model, error) {
	cfg, err := config.Load()
	if err != nil {
		return model{}, err
	}
	if cfg.BackendURL == "" {
		return model{}, fmt.Errorf("backend_url is not configured")
	}

	store, err := history.Open()
	if err != nil {
		return model{}, err
	}

	primaryVol := cfg.Volume
	backgroundVol := cfg.BackgroundVolume
	if v, err := store.GetVolumes(); err == nil {
		primaryVol = v.Primary
		backgroundVol = v.Background
	}

	toasts := notify.NewSink()
	svc := transport.New(channel.NewBeepEngine(), channel.NewBeepEngine(), transport.Options{
		Notifier:         toasts,
		GuardTTL:         cfg.GuardTTL(),
		PollInterval:     cfg.PollInterval(),
		PrimaryVolume:    primaryVol,
		BackgroundVolume: backgroundVol,
	})

	return model{
		svc:      svc,
		sub:      svc.Subscribe(),
		toasts:   toasts,
		client:   catalog.New(cfg.BackendURL),
		store:    store,
		musicIdx: -1,
		loading:  true,
	}, nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		loadCatalog(m.client),
		waitPlayback(m.sub),
		waitToast(m.toasts),
	)
}

func loadCatalog(client *catalog.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
		defer cancel()

		playlists, err := client.Playlists(ctx)
		if err != nil {
			return catalogMsg{err: err}
		}
		music, err := client.BackgroundMusic(ctx)
		if err != nil {
			// The bed catalog is optional; play without it.
			music = nil
		}
		return catalogMsg{playlists: playlists, music: music}
	}
}

func loadClips(client *catalog.Client, pl affirmation.Playlist) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
		defer cancel()

		clips, err := client.Affirmations(ctx, pl.ID)
		return clipsMsg{playlist: pl, clips: clips, err: err}
	}
}

// waitPlayback blocks on the subscription until any playback event
// arrives, then triggers a redraw. Errors become toasts.
func waitPlayback(sub *transport.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-sub.StateChanged:
			return playbackMsg{}
		case <-sub.ClipChanged:
			return playbackMsg{}
		case <-sub.PositionChanged:
			return playbackMsg{}
		case e := <-sub.Error:
			return playbackErrMsg{message: e.Message()}
		case <-sub.Done:
			return subClosedMsg{}
		}
	}
}

func waitToast(toasts *notify.Sink) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-toasts.C()
		if !ok {
			return nil
		}
		return toastMsg(t)
	}
}

func clearToastAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case catalogMsg:
		m.loading = false
		if msg.err != nil {
			m.toast = fmt.Sprintf("Could not load playlists: %v", msg.err)
			return m, clearToastAfter(5 * time.Second)
		}
		m.playlists = msg.playlists
		m.music = msg.music

	case clipsMsg:
		if msg.err != nil {
			m.toast = fmt.Sprintf("Could not load affirmations: %v", msg.err)
			return m, clearToastAfter(5 * time.Second)
		}
		if err := m.svc.PlayPlaylist(msg.playlist, msg.clips, 0); err == nil {
			// Recording is fire-and-forget; never blocks playback.
			go func() {
				_ = m.store.RecordPlay(msg.playlist.ID, msg.playlist.Title)
			}()
		}

	case playbackMsg:
		return m, waitPlayback(m.sub)

	case playbackErrMsg:
		m.toast = msg.message
		return m, tea.Batch(waitPlayback(m.sub), clearToastAfter(5*time.Second))

	case toastMsg:
		m.toast = msg.Message
		return m, tea.Batch(waitToast(m.toasts), clearToastAfter(5*time.Second))

	case toastExpiredMsg:
		m.toast = ""

	case subClosedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.svc.View()

	switch msg.String() {
	case "q", "ctrl+c":
		m.shutdown()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.playlists)-1 {
			m.cursor++
		}

	case "enter":
		if m.cursor < len(m.playlists) {
			return m, loadClips(m.client, m.playlists[m.cursor])
		}

	case " ":
		_ = m.svc.Toggle()

	case "n":
		_ = m.svc.Next()

	case "p":
		_ = m.svc.Previous()

	case "right":
		if v.HasSession {
			_ = m.svc.Seek(v.Position + seekStep)
		}

	case "left":
		if v.HasSession {
			_ = m.svc.Seek(v.Position - seekStep)
		}

	case "+", "=":
		m.svc.SetVolume(v.PrimaryVolume + volumeStep)

	case "-":
		m.svc.SetVolume(v.PrimaryVolume - volumeStep)

	case "]":
		m.svc.SetBackgroundVolume(v.BackgroundVolume + volumeStep)

	case "[":
		m.svc.SetBackgroundVolume(v.BackgroundVolume - volumeStep)

	case "b":
		m = m.cycleBackgroundMusic()
	}

	return m, nil
}

// cycleBackgroundMusic steps through none -> each bed -> none.
func (m model) cycleBackgroundMusic() model {
	if len(m.music) == 0 {
		return m
	}
	m.musicIdx++
	if m.musicIdx >= len(m.music) {
		m.musicIdx = -1
		m.svc.SetBackgroundMusic(nil)
		return m
	}
	bed := m.music[m.musicIdx]
	m.svc.SetBackgroundMusic(&bed)
	return m
}

func (m model) shutdown() {
	v := m.svc.View()
	_ = m.store.SaveVolumes(v.PrimaryVolume, v.BackgroundVolume)
	_ = m.svc.Close()
	_ = m.store.Close()
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("serene"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(descStyle.Render("  Loading playlists…"))
		b.WriteString("\n")
	case len(m.playlists) == 0:
		b.WriteString(descStyle.Render("  No playlists available."))
		b.WriteString("\n")
	default:
		for i, pl := range m.playlists {
			line := fmt.Sprintf("%s (%d affirmations)", pl.Title, pl.AffirmationCount)
			if i == m.cursor {
				b.WriteString(selectedItemStyle.Render("› " + line))
			} else {
				b.WriteString(listItemStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	if m.toast != "" {
		b.WriteString("\n")
		b.WriteString(toastStyle.Render(m.toast))
		b.WriteString("\n")
	}

	bar := playerbar.Render(playerbar.NewState(m.svc.View()), m.width)
	if bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ select · enter play · space pause · n/p skip · ←/→ seek · +/- volume · [/] bed volume · b music · q quit"))

	return b.String()
}

func main() {
	m, err := initialModel()
	if err != nil {
		fmt.Printf("Error initializing: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
