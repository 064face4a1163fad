package presence

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

type errorHandler func(w http.ResponseWriter, r *http.Request) error

func (h errorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h(w, r)
	if err != nil {
		pterm.Error.Println(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

//go:embed web/*
var web embed.FS

var tpl = template.Must(
	template.New("index.html").ParseFS(web, "web/index.html"),
)

type templateData struct {
	Entries     []Entry
	GeneratedAt string
}

type server struct {
	feed *Feed
}

func renderIndex(data *templateData) ([]byte, error) {
	var buf bytes.Buffer

	err := tpl.Execute(&buf, data)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *server) index(w http.ResponseWriter, _ *http.Request) error {
	err := s.feed.Refresh()
	if err != nil {
		return err
	}

	b, err := renderIndex(&templateData{
		Entries:     s.feed.Entries(),
		GeneratedAt: time.Now().Format(time.RFC1123),
	})
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}

func (s *server) apiFeed(w http.ResponseWriter, _ *http.Request) error {
	err := s.feed.Refresh()
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")

	return json.NewEncoder(w).Encode(s.feed.Entries())
}

// Serve exposes the presence feed over HTTP: a human-readable index and a
// JSON endpoint for anything else that wants the feed.
func Serve(feed *Feed, port uint) error {
	mux := http.NewServeMux()

	s := &server{feed: feed}

	mux.Handle("/", errorHandler(s.index))
	mux.Handle("/api/feed", errorHandler(s.apiFeed))

	pterm.Info.Printfln("serving the sprint feed on port %d", port)

	//nolint:gosec // no timeout is ok
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

// ShortID abbreviates a sprint id for display. Join accepts the prefix
// back.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}
