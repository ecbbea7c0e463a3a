package service

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"
)

// Entry es una fila del ranking, lista para mostrar. Derivada, nunca se persiste.
type Entry struct {
	UserID     string
	Name       string
	Points     int
	Messages   int
	ModActions int
}

type LeaderboardService struct {
	activity ActivityRepo
	gw       Gateway
	weights  Weights
	guildID  string
}

func NewLeaderboardService(activity ActivityRepo, gw Gateway, w Weights, guildID string) *LeaderboardService {
	return &LeaderboardService{activity: activity, gw: gw, weights: w, guildID: guildID}
}

// Build arma el ranking descendente por puntos; limit > 0 trunca después de
// ordenar. Devuelve (nil, nil) si no hay datos y (nil, err) si el snapshot
// falló — en producción ambos se muestran como "sin datos", pero el caller
// puede distinguirlos.
func (s *LeaderboardService) Build(ctx context.Context, limit int) ([]Entry, error) {
	snap, err := s.activity.GetAll(ctx)
	if err != nil {
		log.Printf("leaderboard: snapshot: %v", err)
		return nil, err
	}
	if len(snap) == 0 {
		return nil, nil
	}

	out := make([]Entry, 0, len(snap))
	for uid, rec := range snap {
		out = append(out, Entry{
			UserID:     uid,
			Points:     s.weights.Points(rec),
			Messages:   rec.Messages,
			ModActions: rec.ModActions,
		})
	}

	// sort estable: los empates conservan el orden de iteración del snapshot
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(b.Points, a.Points)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	// nombres solo para lo que se va a mostrar; quien ya no está en el guild
	// queda con placeholder en vez de romper el ranking
	for i := range out {
		if name, ok := s.gw.DisplayName(s.guildID, out[i].UserID); ok {
			out[i].Name = name
		} else {
			out[i].Name = fmt.Sprintf("<Left user %s>", out[i].UserID)
		}
	}
	return out, nil
}

// RenderLines produce las líneas rankeadas del formato compartido entre el
// comando /leaderboard y la publicación programada.
func RenderLines(entries []Entry) []string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("**%d. %s** — %d pts (%d msgs, %d actions)",
			i+1, e.Name, e.Points, e.Messages, e.ModActions))
	}
	return lines
}
