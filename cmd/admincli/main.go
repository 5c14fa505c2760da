// Package main provides the admin CLI entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	apiconnect "github.com/osa030/tunebox/internal/api/connect"
	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
	"github.com/osa030/tunebox/internal/api/tuneboxv1/tuneboxv1connect"
)

var (
	app    = kingpin.New("tunebox-admincli", "tunebox catalog admin client")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").Envar("TUNEBOX_SERVER").String()
	token  = app.Flag("token", "Admin token (or set ADMIN_TOKEN env)").Envar("ADMIN_TOKEN").String()

	// stats command
	statsCmd = app.Command("stats", "Show catalog statistics")

	// create-playlist command
	createCmd   = app.Command("create-playlist", "Create an empty playlist")
	createName  = createCmd.Arg("name", "Playlist name").Required().String()
	createCover = createCmd.Flag("cover", "Cover image URL").String()

	// delete-playlist command
	deletePlaylistCmd = app.Command("delete-playlist", "Delete a playlist and its songs")
	deletePlaylistID  = deletePlaylistCmd.Arg("playlist-id", "Playlist ID").Required().String()

	// add-song command
	addSongCmd      = app.Command("add-song", "Add a song")
	addSongName     = addSongCmd.Arg("name", "Song name").Required().String()
	addSongArtist   = addSongCmd.Arg("artist", "Artist").Required().String()
	addSongFile     = addSongCmd.Arg("file-url", "Media file path or URL").Required().String()
	addSongPlaylist = addSongCmd.Flag("playlist", "Playlist ID to add the song to").Short('p').String()

	// delete-song command
	deleteSongCmd = app.Command("delete-song", "Delete a song")
	deleteSongID  = deleteSongCmd.Arg("song-id", "Song ID").Required().String()

	// import command
	importCmd = app.Command("import", "Import a Spotify playlist")
	importRef = importCmd.Arg("playlist", "Spotify playlist URL, URI or ID").Required().String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Check admin token
	if *token == "" {
		fmt.Println("Error: admin token is required (use --token or ADMIN_TOKEN env)")
		os.Exit(1)
	}

	// Create client
	client := tuneboxv1connect.NewAdminServiceClient(
		http.DefaultClient,
		*server,
	)

	ctx := context.Background()

	// Execute command
	switch command {
	case statsCmd.FullCommand():
		stats(ctx, client, *token)
	case createCmd.FullCommand():
		createPlaylist(ctx, client, *token, *createName, *createCover)
	case deletePlaylistCmd.FullCommand():
		deletePlaylist(ctx, client, *token, *deletePlaylistID)
	case addSongCmd.FullCommand():
		addSong(ctx, client, *token, &tuneboxv1.AddSongRequest{
			Name:       *addSongName,
			Artist:     *addSongArtist,
			FileURL:    *addSongFile,
			PlaylistID: *addSongPlaylist,
		})
	case deleteSongCmd.FullCommand():
		deleteSong(ctx, client, *token, *deleteSongID)
	case importCmd.FullCommand():
		importPlaylist(ctx, client, *token, *importRef)
	}
}

// newRequest wraps msg with the admin token header.
func newRequest[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(apiconnect.AdminTokenHeader, token)
	return req
}

func exitWithError(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

func stats(ctx context.Context, client *tuneboxv1connect.AdminServiceClient, token string) {
	resp, err := client.GetStats(ctx, newRequest(&tuneboxv1.Empty{}, token))
	if err != nil {
		exitWithError(err)
	}

	s := resp.Msg
	fmt.Println("\n=== CATALOG STATS ===")
	fmt.Printf("Playlists: %d\n", s.PlaylistCount)
	fmt.Printf("Songs: %d\n", s.SongCount)

	if len(s.RecentPlaylists) > 0 {
		fmt.Println("\nRecent Playlists:")
		for _, p := range s.RecentPlaylists {
			fmt.Printf("  %s: %s (%d songs, created: %s)\n",
				p.ID, p.Name, p.SongCount, p.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
	}
	fmt.Println()
}

func createPlaylist(ctx context.Context, client *tuneboxv1connect.AdminServiceClient, token, name, cover string) {
	resp, err := client.CreatePlaylist(ctx, newRequest(&tuneboxv1.CreatePlaylistRequest{
		Name:          name,
		CoverImageURL: cover,
	}, token))
	if err != nil {
		exitWithError(err)
	}

	fmt.Printf("Playlist created: %s (%s)\n", resp.Msg.Playlist.Name, resp.Msg.Playlist.ID)
}

func deletePlaylist(ctx context.Context, client *tuneboxv1connect.AdminServiceClient, token, id string) {
	if _, err := client.DeletePlaylist(ctx, newRequest(&tuneboxv1.DeletePlaylistRequest{ID: id}, token)); err != nil {
		exitWithError(err)
	}

	fmt.Println("Playlist deleted")
}

func addSong(ctx context.Context, client *tuneboxv1connect.AdminServiceClient, token string, msg *tuneboxv1.AddSongRequest) {
	resp, err := client.AddSong(ctx, newRequest(msg, token))
	if err != nil {
		exitWithError(err)
	}

	song := resp.Msg.Song
	fmt.Printf("Song added: %s - %s (%s)\n", song.Name, song.Artist, song.ID)
}

func deleteSong(ctx context.Context, client *tuneboxv1connect.AdminServiceClient, token, id string) {
	if _, err := client.DeleteSong(ctx, newRequest(&tuneboxv1.DeleteSongRequest{ID: id}, token)); err != nil {
		exitWithError(err)
	}

	fmt.Println("Song deleted")
}

func importPlaylist(ctx context.Context, client *tuneboxv1connect.AdminServiceClient, token, ref string) {
	resp, err := client.ImportPlaylist(ctx, newRequest(&tuneboxv1.ImportPlaylistRequest{PlaylistRef: ref}, token))
	if err != nil {
		exitWithError(err)
	}

	fmt.Printf("Imported %q (%s): %d songs, %d skipped without preview\n",
		resp.Msg.Playlist.Name, resp.Msg.Playlist.ID, resp.Msg.Imported, resp.Msg.Skipped)
}
