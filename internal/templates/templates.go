package templates

import (
	_ "embed"
	"html/template"
	"net/http"
	"strings"
)

//go:embed home.html
var homeHTML string

//go:embed game.html
var gameHTML string

var version = "dev"

// SetCommit records the build identifier shown in page footers
func SetCommit(commit string) {
	version = commit
}

// WriteHomeHTML serves the home page template
func WriteHomeHTML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	html := strings.ReplaceAll(homeHTML, "{{VERSION}}", template.HTMLEscapeString(version))
	_, _ = w.Write([]byte(html))
}

// WriteGameHTML serves the game page template with game ID substitution
func WriteGameHTML(w http.ResponseWriter, gameID string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	html := strings.ReplaceAll(gameHTML, "{{GAME_ID}}", template.JSEscapeString(gameID))
	_, _ = w.Write([]byte(html))
}
