package discord

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/staff-tracker-bot/internal/app/service"
)

const leaderboardTop = 10

type Router struct {
	s       *discordgo.Session
	guildID string

	gw       *Gateway
	activity *service.ActivityService
	board    *service.LeaderboardService
	audit    *service.AuditService
	cfg      service.ConfigRepo
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	gw *Gateway,
	activity *service.ActivityService,
	board *service.LeaderboardService,
	audit *service.AuditService,
	cfg service.ConfigRepo,
) *Router {
	return &Router{
		s:        s,
		guildID:  guildID,
		gw:       gw,
		activity: activity,
		board:    board,
		audit:    audit,
		cfg:      cfg,
	}
}

func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	// Mensajes → contador de actividad (solo staff; sin bots ni DMs)
	r.s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot || m.GuildID == "" {
			return
		}
		if !r.gw.HasStaffRole(m.GuildID, m.Author.ID) {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		r.activity.RecordMessage(ctx, m.Author.ID)
	})

	// Kick → correlación contra el audit log. En goroutine: la correlación
	// espera ~1s y los handlers no deben bloquear el gateway.
	r.s.AddHandler(func(s *discordgo.Session, e *discordgo.GuildMemberRemove) {
		if e.User == nil {
			return
		}
		go r.audit.CorrelateRemoval(context.Background(), e.GuildID, e.User.ID, service.AuditKick)
	})

	// Ban
	r.s.AddHandler(func(s *discordgo.Session, e *discordgo.GuildBanAdd) {
		if e.User == nil {
			return
		}
		go r.audit.CorrelateRemoval(context.Background(), e.GuildID, e.User.ID, service.AuditBan)
	})

	// Slash commands
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if ic.Member == nil || ic.Member.User == nil {
			return
		}
		data := ic.ApplicationCommandData()
		log.Printf("slash: /%s by=%s guild=%s", data.Name, ic.Member.User.ID, ic.GuildID)

		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in slash /%s: %v", data.Name, rec)
				_ = SendEphemeral(s, ic, "⚠️ Ocurrió un error inesperado.")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
		defer cancel()

		switch data.Name {
		case "points":
			r.handlePoints(ctx, s, ic)
		case "leaderboard":
			r.handleLeaderboard(ctx, s, ic)
		}
	})
}

func (r *Router) handlePoints(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	target := ic.Member.User
	if opts := ic.ApplicationCommandData().Options; len(opts) > 0 {
		if u := opts[0].UserValue(s); u != nil {
			target = u
		}
	}

	name, ok := r.gw.DisplayName(ic.GuildID, target.ID)
	if !ok {
		name = target.Username
	}
	_ = SendResponse(s, ic, r.activity.PointsSummary(ctx, target.ID, name))
}

func (r *Router) handleLeaderboard(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if !r.requireStaff(s, ic) {
		return
	}

	entries, err := r.board.Build(ctx, leaderboardTop)
	if err != nil || len(entries) == 0 {
		// storage caído o sin filas: misma respuesta suave
		_ = SendResponse(s, ic, "No staff activity recorded yet.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Staff Leaderboard",
		Description: strings.Join(service.RenderLines(entries), "\n"),
		Color:       leaderboardColor,
	}
	if raw := r.cfg.Get(ctx, service.ConfigKeyNextReset, ""); raw != "" {
		if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
			embed.Footer = &discordgo.MessageEmbedFooter{
				Text: "Resets on " + t.UTC().Format("2006-01-02 15:04 UTC"),
			}
		}
	}
	_ = SendEmbed(s, ic, embed)
}
