package service

import "github.com/jose-valero/staff-tracker-bot/internal/infra/storage"

// Weights se fijan al arranque desde el env y no cambian en runtime.
type Weights struct {
	Message   int
	ModAction int
}

// Points es la única fórmula de score: se aplica igual en el comando directo
// y en la publicación periódica.
func (w Weights) Points(rec storage.ActivityRecord) int {
	return rec.Messages*w.Message + rec.ModActions*w.ModAction
}
