package agent

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"connect4/game"

	"github.com/rs/zerolog/log"
)

// Server answers /findmove requests with a fresh agent of one kind per request.
type Server struct {
	kind       Kind
	options    Options
	maxRows    int
	maxColumns int
}

const maxRequestBytes = 1 << 20

func NewServer(kind Kind, options Options) (*Server, error) {
	if kind == KindRemote {
		return nil, fmt.Errorf("an agent server cannot forward to another server")
	}
	if _, err := New(kind, game.Red, options); err != nil {
		return nil, err
	}
	s := &Server{kind: kind, options: options, maxRows: options.Rows, maxColumns: options.Columns}
	if s.maxRows <= 0 {
		s.maxRows = game.DefaultRows
	}
	if s.maxColumns <= 0 {
		s.maxColumns = game.DefaultColumns
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/findmove", s.handleFindMove)
	return mux
}

// StartAgentServer serves agents of the given kind on addr until the listener fails.
func StartAgentServer(addr string, kind Kind, options Options) error {
	s, err := NewServer(kind, options)
	if err != nil {
		return err
	}
	log.Info().Msgf("Starting %s agent server on %s", kind, addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload MoveRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Board == nil {
		http.Error(w, "bad request: missing board", http.StatusBadRequest)
		return
	}
	if payload.Board.Rows() > s.maxRows || payload.Board.Columns() > s.maxColumns {
		http.Error(w, fmt.Sprintf("bad request: board larger than %dx%d", s.maxRows, s.maxColumns), http.StatusBadRequest)
		return
	}
	if payload.Board.IsFull() || payload.Board.Outcome() != game.Ongoing {
		http.Error(w, "game is already over", http.StatusUnprocessableEntity)
		return
	}

	a, err := New(s.kind, payload.Player, s.options)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	work := payload.Board.Clone()
	if err := a.Move(work); err != nil {
		log.Error().Err(err).Msgf("%s agent failed to move", s.kind)
		http.Error(w, "agent failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	column, err := game.CheckMove(payload.Board, work, payload.Player)
	if err != nil {
		log.Error().Err(err).Msgf("%s agent made an invalid move", s.kind)
		http.Error(w, "agent failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	log.Debug().Msgf("%s agent plays column %d for %s", s.kind, column, payload.Player)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(MoveResponse{Column: column}); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}
