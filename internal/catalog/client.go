// Package catalog provides a client for the content backend's REST API.
// The playback engine never fetches anything itself; callers use this
// client and hand the results to the transport service.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/serenemind/serene/internal/affirmation"
)

// ErrNotFound is returned when the backend has no such resource.
var ErrNotFound = errors.New("not found")

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "serene/1.0 (https://github.com/serenemind/serene)"
)

// Client is a content backend API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given backend base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type playlistResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	DurationSeconds  float64 `json:"duration"`
	AffirmationCount int     `json:"affirmationCount"`
	GradientStart    string  `json:"gradientStart"`
	GradientEnd      string  `json:"gradientEnd"`
	Icon             string  `json:"icon"`
	CategoryID       int64   `json:"categoryId"`
	Featured         bool    `json:"featured"`
}

type affirmationResponse struct {
	ID              int64   `json:"id"`
	Text            string  `json:"text"`
	AudioURL        string  `json:"audioUrl"`
	DurationSeconds float64 `json:"duration"`
	PlaylistID      int64   `json:"playlistId"`
}

type backgroundMusicResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	AudioURL string `json:"audioUrl"`
	Category string `json:"category"`
}

// Playlists fetches the full playlist catalog.
func (c *Client) Playlists(ctx context.Context) ([]affirmation.Playlist, error) {
	var resp []playlistResponse
	if err := c.get(ctx, "/playlists", &resp); err != nil {
		return nil, err
	}
	out := make([]affirmation.Playlist, len(resp))
	for i, p := range resp {
		out[i] = affirmation.Playlist{
			ID:               p.ID,
			Title:            p.Title,
			Description:      p.Description,
			TotalDuration:    secondsToDuration(p.DurationSeconds),
			AffirmationCount: p.AffirmationCount,
			GradientStart:    p.GradientStart,
			GradientEnd:      p.GradientEnd,
			Icon:             p.Icon,
			CategoryID:       p.CategoryID,
			Featured:         p.Featured,
		}
	}
	return out, nil
}

// Playlist fetches playlist metadata by identifier.
func (c *Client) Playlist(ctx context.Context, id int64) (*affirmation.Playlist, error) {
	var resp playlistResponse
	if err := c.get(ctx, fmt.Sprintf("/playlists/%d", id), &resp); err != nil {
		return nil, err
	}
	return &affirmation.Playlist{
		ID:               resp.ID,
		Title:            resp.Title,
		Description:      resp.Description,
		TotalDuration:    secondsToDuration(resp.DurationSeconds),
		AffirmationCount: resp.AffirmationCount,
		GradientStart:    resp.GradientStart,
		GradientEnd:      resp.GradientEnd,
		Icon:             resp.Icon,
		CategoryID:       resp.CategoryID,
		Featured:         resp.Featured,
	}, nil
}

// Affirmations fetches the ordered clip list for a playlist.
func (c *Client) Affirmations(ctx context.Context, playlistID int64) ([]affirmation.Affirmation, error) {
	var resp []affirmationResponse
	if err := c.get(ctx, fmt.Sprintf("/playlists/%d/affirmations", playlistID), &resp); err != nil {
		return nil, err
	}
	out := make([]affirmation.Affirmation, len(resp))
	for i, a := range resp {
		out[i] = affirmation.Affirmation{
			ID:         a.ID,
			Text:       a.Text,
			AudioURL:   a.AudioURL,
			Duration:   secondsToDuration(a.DurationSeconds),
			PlaylistID: a.PlaylistID,
		}
	}
	return out, nil
}

// BackgroundMusic fetches the background music catalog.
func (c *Client) BackgroundMusic(ctx context.Context) ([]affirmation.BackgroundMusic, error) {
	var resp []backgroundMusicResponse
	if err := c.get(ctx, "/background-music", &resp); err != nil {
		return nil, err
	}
	out := make([]affirmation.BackgroundMusic, len(resp))
	for i, m := range resp {
		out[i] = affirmation.BackgroundMusic{
			ID:       m.ID,
			Name:     m.Name,
			AudioURL: m.AudioURL,
			Category: m.Category,
		}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
