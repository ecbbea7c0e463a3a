package service

import (
	"context"
	"log"
	"time"
)

// ConfigKeyNextReset es la única clave de bot_config que usa el core.
const ConfigKeyNextReset = "next_reset"

// Scheduler corre el ciclo periódico: publicar leaderboard → reset de
// contadores → nuevo límite. El tick es grueso (diario), así que el reset
// efectivo puede llegar hasta un tick tarde respecto del límite persistido.
type Scheduler struct {
	activity ActivityRepo
	cfg      ConfigRepo
	board    *LeaderboardService
	pub      Publisher

	interval time.Duration // período de reset
	wake     time.Duration // granularidad del tick
	now      func() time.Time
}

func NewScheduler(activity ActivityRepo, cfg ConfigRepo, board *LeaderboardService, pub Publisher, intervalDays int) *Scheduler {
	return &Scheduler{
		activity: activity,
		cfg:      cfg,
		board:    board,
		pub:      pub,
		interval: time.Duration(intervalDays) * 24 * time.Hour,
		wake:     24 * time.Hour,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// EnsureBoundary inicializa next_reset en el primer arranque, sin disparar
// un ciclo inmediato.
func (s *Scheduler) EnsureBoundary(ctx context.Context) {
	if s.cfg.Get(ctx, ConfigKeyNextReset, "") == "" {
		s.setBoundary(ctx, s.now().Add(s.interval))
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	t := time.NewTicker(s.wake)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick(ctx)
		}
	}
}

// Tick corre a lo sumo un ciclo. Todo error queda contenido acá adentro: el
// próximo tick corre siempre.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()
	if now.Before(s.boundary(ctx, now)) {
		return
	}

	s.publish(ctx)

	// el reset corre aunque la publicación haya fallado
	if err := s.activity.ResetAll(ctx); err != nil {
		log.Printf("reset counters: %v", err)
	}
	s.setBoundary(ctx, now.Add(s.interval))
}

// boundary lee el límite persistido. Un valor corrupto se repara en el acto
// recalculando hacia adelante (sin disparar el ciclo en este tick); un valor
// ausente puede ser una falla transitoria de lectura, así que no se pisa.
func (s *Scheduler) boundary(ctx context.Context, now time.Time) time.Time {
	raw := s.cfg.Get(ctx, ConfigKeyNextReset, "")
	if raw == "" {
		return now.Add(s.interval)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		log.Printf("⚠️ next_reset ilegible (%q): %v", raw, err)
		next := now.Add(s.interval)
		s.setBoundary(ctx, next)
		return next
	}
	return t
}

func (s *Scheduler) setBoundary(ctx context.Context, t time.Time) {
	if err := s.cfg.Set(ctx, ConfigKeyNextReset, t.UTC().Format(time.RFC3339)); err != nil {
		log.Printf("persist next_reset: %v", err)
	}
}

func (s *Scheduler) publish(ctx context.Context) {
	entries, err := s.board.Build(ctx, 0)
	if err != nil || len(entries) == 0 {
		// sin datos (o snapshot caído, mismo trato): aviso en vez de tabla
		if perr := s.pub.PublishNotice(ctx, "No staff activity recorded this period."); perr != nil {
			log.Printf("⚠️ publish notice: %v", perr)
		}
		return
	}
	if err := s.pub.PublishBoard(ctx, s.title(), RenderLines(entries)); err != nil {
		log.Printf("⚠️ publish leaderboard: %v", err)
	}
}

func (s *Scheduler) title() string {
	if s.interval == 7*24*time.Hour {
		return "🏆 Weekly Staff Leaderboard"
	}
	return "🏆 Period Staff Leaderboard"
}
