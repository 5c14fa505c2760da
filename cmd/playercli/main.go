// Package main provides the player CLI entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
	"github.com/osa030/tunebox/internal/api/tuneboxv1/tuneboxv1connect"
	"github.com/osa030/tunebox/internal/app/media"
)

type statusCall func(context.Context, *connect.Request[tuneboxv1.Empty]) (*connect.Response[tuneboxv1.StatusResponse], error)

var (
	app    = kingpin.New("tunebox-playercli", "tunebox player client")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").Envar("TUNEBOX_SERVER").String()

	// play command
	playCmd      = app.Command("play", "Play a song, optionally within a playlist")
	playSong     = playCmd.Arg("song-id", "Song ID").Required().String()
	playPlaylist = playCmd.Flag("playlist", "Playlist ID to play the song from").Short('p').String()

	// replay command
	replayCmd  = app.Command("replay", "Play a recently played song again")
	replaySong = replayCmd.Arg("song-id", "Song ID").Required().String()

	pauseCmd    = app.Command("pause", "Pause playback")
	toggleCmd   = app.Command("toggle", "Toggle play/pause")
	nextCmd     = app.Command("next", "Play the next song").Alias("skip")
	prevCmd     = app.Command("prev", "Play the previous song").Alias("previous")
	loopCmd     = app.Command("loop", "Toggle looping")
	shuffleCmd  = app.Command("shuffle", "Toggle shuffle")
	statusCmd   = app.Command("status", "Show the player status")
	volumeCmd   = app.Command("volume", "Set the volume")
	volumeLevel = volumeCmd.Arg("level", "Volume between 0.0 and 1.0").Required().Float64()

	// seek command
	seekCmd = app.Command("seek", "Move the playback position")
	seekTo  = seekCmd.Arg("position", "Position (e.g. 1m30s)").Required().Duration()

	// watch command
	watchCmd      = app.Command("watch", "Watch status changes")
	watchProgress = watchCmd.Flag("progress", "Include progress updates").Bool()

	// catalog commands
	playlistsCmd   = app.Command("playlists", "List playlists")
	playlistsLimit = playlistsCmd.Flag("limit", "Only show the newest playlists").Int()
	songsCmd       = app.Command("songs", "List songs")
	songsPlaylist  = songsCmd.Arg("playlist-id", "Playlist ID (all songs when omitted)").String()
	searchCmd      = app.Command("search", "Search playlists and songs")
	searchTerm     = searchCmd.Arg("term", "Search term").Required().String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	player := tuneboxv1connect.NewPlayerServiceClient(http.DefaultClient, *server)
	catalog := tuneboxv1connect.NewCatalogServiceClient(http.DefaultClient, *server)

	ctx := context.Background()

	// Execute command
	switch command {
	case playCmd.FullCommand():
		resp, err := player.Play(ctx, connect.NewRequest(&tuneboxv1.PlayRequest{
			SongID:     *playSong,
			PlaylistID: *playPlaylist,
		}))
		printResult(resp, err)
	case replayCmd.FullCommand():
		resp, err := player.Replay(ctx, connect.NewRequest(&tuneboxv1.ReplayRequest{SongID: *replaySong}))
		printResult(resp, err)
	case pauseCmd.FullCommand():
		call(ctx, player.Pause)
	case toggleCmd.FullCommand():
		call(ctx, player.Toggle)
	case nextCmd.FullCommand():
		call(ctx, player.Next)
	case prevCmd.FullCommand():
		call(ctx, player.Previous)
	case loopCmd.FullCommand():
		call(ctx, player.ToggleLoop)
	case shuffleCmd.FullCommand():
		call(ctx, player.ToggleShuffle)
	case statusCmd.FullCommand():
		call(ctx, player.GetStatus)
	case volumeCmd.FullCommand():
		resp, err := player.SetVolume(ctx, connect.NewRequest(&tuneboxv1.SetVolumeRequest{Volume: *volumeLevel}))
		printResult(resp, err)
	case seekCmd.FullCommand():
		resp, err := player.Scrub(ctx, connect.NewRequest(&tuneboxv1.ScrubRequest{
			Phase:      tuneboxv1.ScrubPhaseEnd,
			PositionMs: seekTo.Milliseconds(),
		}))
		printResult(resp, err)
	case watchCmd.FullCommand():
		watch(ctx, player, *watchProgress)
	case playlistsCmd.FullCommand():
		listPlaylists(ctx, catalog, *playlistsLimit)
	case songsCmd.FullCommand():
		listSongs(ctx, catalog, *songsPlaylist)
	case searchCmd.FullCommand():
		search(ctx, catalog, *searchTerm)
	}
}

func call(ctx context.Context, fn statusCall) {
	resp, err := fn(ctx, connect.NewRequest(&tuneboxv1.Empty{}))
	printResult(resp, err)
}

func printResult(resp *connect.Response[tuneboxv1.StatusResponse], err error) {
	if err != nil {
		exitWithError(err)
	}
	printStatus(resp.Msg.Status)
}

func exitWithError(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

func printStatus(s *tuneboxv1.Status) {
	if s == nil {
		fmt.Println("No status")
		return
	}

	fmt.Println("\n=== PLAYER STATUS ===")
	fmt.Printf("State: %s\n", formatState(s.State))
	fmt.Printf("Volume: %d%%\n", int(s.Volume*100+0.5))
	fmt.Printf("Loop: %s  Shuffle: %s\n", onOff(s.IsLooping), onOff(s.IsShuffled))

	if s.Current != nil {
		fmt.Println("\nNow Playing:")
		fmt.Printf("  %s - %s (%s)\n", s.Current.Song.Name, s.Current.Song.Artist, s.Current.Song.ID)
		if s.Current.Playlist != nil {
			fmt.Printf("  Playlist: %s\n", s.Current.Playlist.Name)
		}
		fmt.Printf("  %s\n", formatProgress(s.Progress))
	} else {
		fmt.Println("\nNothing playing")
	}

	if len(s.Queue) > 0 {
		fmt.Printf("\nQueue (%d):\n", len(s.Queue))
		for i, song := range s.Queue {
			marker := "  "
			if i == s.Position {
				marker = "> "
			}
			fmt.Printf("%s%2d. %s - %s\n", marker, i+1, song.Name, song.Artist)
		}
	}

	if len(s.RecentlyPlayed) > 0 {
		fmt.Println("\nRecently Played:")
		for _, entry := range s.RecentlyPlayed {
			fmt.Printf("  %s - %s (%s)\n", entry.Song.Name, entry.Song.Artist, entry.Song.ID)
		}
	}
	fmt.Println()
}

func formatState(state tuneboxv1.PlaybackState) string {
	switch state {
	case tuneboxv1.PlaybackStatePlaying:
		return "▶️  Playing"
	case tuneboxv1.PlaybackStatePaused:
		return "⏸  Paused"
	case tuneboxv1.PlaybackStateIdle:
		return "⏹  Idle"
	default:
		return "❓ Unknown"
	}
}

func formatProgress(p tuneboxv1.Progress) string {
	position := time.Duration(p.PositionMs) * time.Millisecond
	duration := time.Duration(p.DurationMs) * time.Millisecond
	line := fmt.Sprintf("%s / %s", media.FormatClock(position), media.FormatClock(duration))
	if p.Dragging {
		line += " (dragging)"
	}
	return line
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func watch(ctx context.Context, client *tuneboxv1connect.PlayerServiceClient, includeProgress bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := client.WatchStatus(ctx, connect.NewRequest(&tuneboxv1.WatchStatusRequest{
		IncludeProgress: includeProgress,
	}))
	if err != nil {
		exitWithError(err)
	}

	fmt.Println("Watching player status. Press Ctrl+C to exit.")

	// Handle shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nStopping...")
		cancel()
	}()

	for stream.Receive() {
		printNotification(stream.Msg())
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		fmt.Printf("Stream error: %v\n", err)
	}
}

func printNotification(n *tuneboxv1.Notification) {
	if n.Type == tuneboxv1.NotificationTypeProgress {
		if n.Status != nil {
			fmt.Printf("\r%s", formatProgress(n.Status.Progress))
		}
		return
	}

	// Print sequence number
	fmt.Printf("\n[Sequence: %d] ", n.SequenceNo)

	// Print event type header
	switch n.Type {
	case tuneboxv1.NotificationTypeInitialState:
		fmt.Println("=== INITIAL STATE ===")
	case tuneboxv1.NotificationTypeSongChanged:
		fmt.Println("=== SONG CHANGED ===")
	case tuneboxv1.NotificationTypeStateChanged:
		fmt.Println("=== STATE CHANGED ===")
	case tuneboxv1.NotificationTypeSettingsChanged:
		fmt.Println("=== SETTINGS CHANGED ===")
	default:
		fmt.Printf("=== UNKNOWN EVENT (%v) ===\n", n.Type)
	}
	printStatus(n.Status)
}

func listPlaylists(ctx context.Context, client *tuneboxv1connect.CatalogServiceClient, limit int) {
	resp, err := client.ListPlaylists(ctx, connect.NewRequest(&tuneboxv1.ListPlaylistsRequest{Limit: limit}))
	if err != nil {
		exitWithError(err)
	}

	fmt.Printf("Playlists (%d):\n", len(resp.Msg.Playlists))
	for _, p := range resp.Msg.Playlists {
		fmt.Printf("  %s: %s (%d songs)\n", p.ID, p.Name, p.SongCount)
	}
}

func listSongs(ctx context.Context, client *tuneboxv1connect.CatalogServiceClient, playlistID string) {
	resp, err := client.ListSongs(ctx, connect.NewRequest(&tuneboxv1.ListSongsRequest{PlaylistID: playlistID}))
	if err != nil {
		exitWithError(err)
	}

	fmt.Printf("Songs (%d):\n", len(resp.Msg.Songs))
	for _, s := range resp.Msg.Songs {
		fmt.Printf("  %s: %s - %s\n", s.ID, s.Name, s.Artist)
	}
}

func search(ctx context.Context, client *tuneboxv1connect.CatalogServiceClient, term string) {
	resp, err := client.Search(ctx, connect.NewRequest(&tuneboxv1.SearchRequest{Term: term}))
	if err != nil {
		exitWithError(err)
	}

	fmt.Printf("Results for %q\n", strings.TrimSpace(term))
	fmt.Printf("\nPlaylists (%d):\n", len(resp.Msg.Playlists))
	for _, p := range resp.Msg.Playlists {
		fmt.Printf("  %s: %s (%d songs)\n", p.ID, p.Name, p.SongCount)
	}
	fmt.Printf("\nSongs (%d):\n", len(resp.Msg.Songs))
	for _, s := range resp.Msg.Songs {
		fmt.Printf("  %s: %s - %s\n", s.ID, s.Name, s.Artist)
	}
}
