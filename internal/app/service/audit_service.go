package service

import (
	"context"
	"log"
	"time"
)

// Ventana acotada de entradas recientes que se revisan por correlación.
const auditWindow = 5

type AuditService struct {
	activity ActivityRepo
	gw       Gateway
	delay    time.Duration
}

func NewAuditService(activity ActivityRepo, gw Gateway) *AuditService {
	// el audit log se escribe async; al llegar el evento puede no existir
	// todavía la entrada, por eso la espera fija antes de consultar
	return &AuditService{activity: activity, gw: gw, delay: 1 * time.Second}
}

// CorrelateRemoval atribuye un kick/ban al staff que lo ejecutó: espera,
// lee la ventana reciente del audit log y toma la primera entrada cuyo target
// coincide como autoritativa. Acredita exactamente un mod_action si el actor
// existe, no es un bot y tiene el rol de staff; cualquier otro caso (sin
// match, sin permiso de lectura, actor no calificado) es "no se pudo
// atribuir", no un error.
//
// Limitación conocida: dos removals rápidos del mismo target pueden matchear
// la misma entrada y acreditar dos veces; no se deduplica entre ventanas.
func (s *AuditService) CorrelateRemoval(ctx context.Context, guildID, targetID string, action AuditAction) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return
	}

	entries, err := s.gw.AuditEntries(ctx, guildID, action, auditWindow)
	if err != nil {
		log.Printf("⚠️ audit log (%s) ilegible en guild %s: %v", action, guildID, err)
		return
	}

	for _, e := range entries {
		if e.TargetID != targetID {
			continue
		}
		// primera coincidencia = autoritativa; duplicados más viejos se ignoran
		if e.ActorID != "" && !e.ActorIsBot && s.gw.HasStaffRole(guildID, e.ActorID) {
			if err := s.activity.IncrementModActions(ctx, e.ActorID); err != nil {
				log.Printf("increment mod actions %s: %v", e.ActorID, err)
			} else {
				log.Printf("✅ counted %s by %s in guild %s", action, e.ActorID, guildID)
			}
		}
		return
	}
}
