// Package pokeapitest serves a small in-memory PokeAPI for tests.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
)

// Server is an httptest server answering /pokemon, /pokemon/{id} and
// /pokemon-species/{id} from its maps. Paths listed in Fail answer with the
// given status; paths listed in Raw answer with the given body verbatim.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	Roster  []pokeapi.NamedResource
	Pokemon map[int]*pokeapi.Pokemon
	Species map[int]*pokeapi.Species
	Fail    map[string]int
	Raw     map[string]string
	hits    map[string]int
}

func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		Pokemon: map[int]*pokeapi.Pokemon{},
		Species: map[int]*pokeapi.Species{},
		Fail:    map[string]int{},
		Raw:     map[string]string{},
		hits:    map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL mirrors the real API prefix.
func (s *Server) BaseURL() string {
	return s.URL + "/api/v2"
}

// Add registers a pokemon, its species record and its roster entry.
func (s *Server) Add(p *pokeapi.Pokemon, sp *pokeapi.Species) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Roster = append(s.Roster, pokeapi.NamedResource{
		Name: p.Name,
		URL:  fmt.Sprintf("%s/api/v2/pokemon/%d/", s.URL, p.ID),
	})
	s.Pokemon[p.ID] = p
	if sp != nil {
		s.Species[p.ID] = sp
	}
}

// SetFail makes path answer with status.
func (s *Server) SetFail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fail[path] = status
}

// SetRaw makes path answer 200 with body.
func (s *Server) SetRaw(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Raw[path] = body
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v2")

	s.mu.Lock()
	s.hits[path]++
	status, failing := s.Fail[path]
	raw, isRaw := s.Raw[path]
	s.mu.Unlock()

	if failing {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if isRaw {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(raw))
		return
	}

	switch {
	case path == "/pokemon":
		s.serveRoster(w, r)
	case strings.HasPrefix(path, "/pokemon/"):
		s.serveByID(w, strings.TrimPrefix(path, "/pokemon/"), func(id int) (any, bool) {
			s.mu.Lock()
			defer s.mu.Unlock()
			p, ok := s.Pokemon[id]
			return p, ok
		})
	case strings.HasPrefix(path, "/pokemon-species/"):
		s.serveByID(w, strings.TrimPrefix(path, "/pokemon-species/"), func(id int) (any, bool) {
			s.mu.Lock()
			defer s.mu.Unlock()
			sp, ok := s.Species[id]
			return sp, ok
		})
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveRoster(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	results := append([]pokeapi.NamedResource(nil), s.Roster...)
	s.mu.Unlock()

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit < len(results) {
		results = results[:limit]
	}
	writeJSON(w, pokeapi.RosterResponse{Count: len(results), Results: results})
}

func (s *Server) serveByID(w http.ResponseWriter, raw string, lookup func(int) (any, bool)) {
	id, err := strconv.Atoi(strings.TrimSuffix(raw, "/"))
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	v, ok := lookup(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
