package web

import (
	"fmt"
	"log"
	"net/http"
)

// Server es el keep-alive para el hosting: una sola ruta, cero estado
// compartido con el resto del bot.
type Server struct {
	mux *http.ServeMux
}

func New() *Server {
	s := &Server{mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleHome)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fmt.Fprint(w, "✅ Staff Tracker Bot is alive!")
}

// Handler expone el mux (lo usan los tests).
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) Start(addr string) {
	log.Printf("🌐 HTTP listening on %s", addr)
	if err := http.ListenAndServe(addr, s.mux); err != nil {
		log.Fatalf("http server: %v", err)
	}
}
