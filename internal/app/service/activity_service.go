package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jose-valero/staff-tracker-bot/internal/infra/storage"
)

type ActivityService struct {
	activity ActivityRepo
	weights  Weights
}

func NewActivityService(activity ActivityRepo, w Weights) *ActivityService {
	return &ActivityService{activity: activity, weights: w}
}

// RecordMessage suma 1 al contador de mensajes. El error se loguea y se
// descarta: un handler de eventos nunca debe tumbar la conexión.
func (s *ActivityService) RecordMessage(ctx context.Context, userID string) {
	if err := s.activity.IncrementMessages(ctx, userID); err != nil {
		log.Printf("increment messages %s: %v", userID, err)
	}
}

// PointsSummary arma la respuesta del comando /points. Si el storage falla,
// responde ceros (read-soft-fail).
func (s *ActivityService) PointsSummary(ctx context.Context, userID, name string) string {
	rec, err := s.activity.Get(ctx, userID)
	if err != nil {
		log.Printf("get activity %s: %v", userID, err)
		rec = storage.ActivityRecord{UserID: userID}
	}
	return fmt.Sprintf("**%s** — %d pts (%d msgs, %d mod actions)",
		name, s.weights.Points(rec), rec.Messages, rec.ModActions)
}
