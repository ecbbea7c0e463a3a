package service

import (
	"context"

	"github.com/jose-valero/staff-tracker-bot/internal/infra/storage"
)

// Lo implementa internal/infra/storage.ActivityRepo
type ActivityRepo interface {
	Get(ctx context.Context, userID string) (storage.ActivityRecord, error)
	IncrementMessages(ctx context.Context, userID string) error
	IncrementModActions(ctx context.Context, userID string) error
	GetAll(ctx context.Context) (map[string]storage.ActivityRecord, error)
	ResetAll(ctx context.Context) error
}

// Lo implementa internal/infra/storage.ConfigRepo
type ConfigRepo interface {
	Get(ctx context.Context, key, def string) string
	Set(ctx context.Context, key, value string) error
}

type AuditAction string

const (
	AuditKick AuditAction = "kick"
	AuditBan  AuditAction = "ban"
)

// AuditEntry es un registro del audit log tal como lo entrega la plataforma
// (ventana ordenada, más reciente primero).
type AuditEntry struct {
	Action     AuditAction
	TargetID   string
	ActorID    string
	ActorIsBot bool
}

// Gateway son las capacidades de plataforma que necesitan los services:
// audit log, chequeo de rol de staff y resolución de nombres. Lo implementa
// internal/adapters/discord.Gateway; en tests, un fake.
type Gateway interface {
	AuditEntries(ctx context.Context, guildID string, action AuditAction, limit int) ([]AuditEntry, error)
	HasStaffRole(guildID, userID string) bool
	DisplayName(guildID, userID string) (string, bool)
}

// Publisher es el destino de la publicación programada del leaderboard.
type Publisher interface {
	PublishBoard(ctx context.Context, title string, lines []string) error
	PublishNotice(ctx context.Context, text string) error
}
