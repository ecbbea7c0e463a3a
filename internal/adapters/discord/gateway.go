package discord

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/staff-tracker-bot/internal/app/service"
)

// Gateway implementa service.Gateway y service.Publisher sobre la sesión:
// roles, canales, audit log y nombres, todo centralizado acá para que los
// services se testeen sin conexión viva.
type Gateway struct {
	s             *discordgo.Session
	guildID       string
	staffRoleName string
	channelID     string // destino explícito del leaderboard (opcional)
	channelName   string
}

func NewGateway(s *discordgo.Session, guildID, staffRoleName, channelID, channelName string) *Gateway {
	return &Gateway{
		s:             s,
		guildID:       guildID,
		staffRoleName: staffRoleName,
		channelID:     channelID,
		channelName:   channelName,
	}
}

// AuditEntries trae la ventana reciente del audit log para un tipo de acción.
func (g *Gateway) AuditEntries(ctx context.Context, guildID string, action service.AuditAction, limit int) ([]service.AuditEntry, error) {
	actionType := discordgo.AuditLogActionMemberKick
	if action == service.AuditBan {
		actionType = discordgo.AuditLogActionMemberBanAdd
	}

	audit, err := g.s.GuildAuditLog(guildID, "", "", int(actionType), limit, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	// el payload trae los users referenciados; de ahí sale el flag de bot
	isBot := make(map[string]bool, len(audit.Users))
	for _, u := range audit.Users {
		isBot[u.ID] = u.Bot
	}

	out := make([]service.AuditEntry, 0, len(audit.AuditLogEntries))
	for _, e := range audit.AuditLogEntries {
		out = append(out, service.AuditEntry{
			Action:     action,
			TargetID:   e.TargetID,
			ActorID:    e.UserID,
			ActorIsBot: isBot[e.UserID],
		})
	}
	return out, nil
}

func (g *Gateway) HasStaffRole(guildID, userID string) bool {
	roleID := g.staffRoleID(guildID)
	if roleID == "" {
		return false
	}
	m, err := g.member(guildID, userID)
	if err != nil || m == nil {
		return false
	}
	return slices.Contains(m.Roles, roleID)
}

// DisplayName resuelve el nombre visible; ok=false si ya no es miembro.
func (g *Gateway) DisplayName(guildID, userID string) (string, bool) {
	m, err := g.member(guildID, userID)
	if err != nil || m == nil {
		return "", false
	}
	return memberDisplayName(m), true
}

// PublishBoard manda el leaderboard como embed al canal resuelto.
func (g *Gateway) PublishBoard(ctx context.Context, title string, lines []string) error {
	chID, err := g.resolveLeaderboardChannel()
	if err != nil {
		return err
	}
	_, err = g.s.ChannelMessageSendEmbed(chID, &discordgo.MessageEmbed{
		Title:       title,
		Description: strings.Join(lines, "\n"),
		Color:       leaderboardColor,
	}, discordgo.WithContext(ctx))
	return err
}

func (g *Gateway) PublishNotice(ctx context.Context, text string) error {
	chID, err := g.resolveLeaderboardChannel()
	if err != nil {
		return err
	}
	_, err = g.s.ChannelMessageSend(chID, text, discordgo.WithContext(ctx))
	return err
}

// ---------- helpers ----------

const leaderboardColor = 0xFFD700

func (g *Gateway) staffRoleID(guildID string) string {
	var roles []*discordgo.Role
	if guild, err := g.s.State.Guild(guildID); err == nil && guild != nil && len(guild.Roles) > 0 {
		roles = guild.Roles
	} else if rs, err := g.s.GuildRoles(guildID); err == nil {
		roles = rs
	}
	for _, r := range roles {
		if r.Name == g.staffRoleName {
			return r.ID
		}
	}
	return ""
}

func (g *Gateway) member(guildID, userID string) (*discordgo.Member, error) {
	if m, err := g.s.State.Member(guildID, userID); err == nil && m != nil {
		return m, nil
	}
	return g.s.GuildMember(guildID, userID)
}

func memberDisplayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		if m.User.GlobalName != "" {
			return m.User.GlobalName
		}
		return m.User.Username
	}
	return ""
}

// resolveLeaderboardChannel: ID explícito → por nombre → canal de sistema →
// primer canal de texto → error (se loguea y se saltea la publicación).
func (g *Gateway) resolveLeaderboardChannel() (string, error) {
	if g.channelID != "" {
		if ch, err := g.safeGetChannel(g.channelID); err == nil && ch != nil {
			return ch.ID, nil
		}
	}

	channels := g.guildChannels()
	var firstText string
	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		if ch.Name == g.channelName {
			return ch.ID, nil
		}
		if firstText == "" {
			firstText = ch.ID
		}
	}

	if guild, err := g.s.State.Guild(g.guildID); err == nil && guild != nil && guild.SystemChannelID != "" {
		return guild.SystemChannelID, nil
	}
	if firstText != "" {
		return firstText, nil
	}
	return "", errors.New("no text channel available for leaderboard")
}

func (g *Gateway) guildChannels() []*discordgo.Channel {
	if guild, err := g.s.State.Guild(g.guildID); err == nil && guild != nil && len(guild.Channels) > 0 {
		return guild.Channels
	}
	chs, err := g.s.GuildChannels(g.guildID)
	if err != nil {
		return nil
	}
	return chs
}

func (g *Gateway) safeGetChannel(id string) (*discordgo.Channel, error) {
	if ch, err := g.s.State.Channel(id); err == nil && ch != nil {
		return ch, nil
	}
	ch, err := g.s.Channel(id)
	if err != nil {
		return nil, err
	}
	_ = g.s.State.ChannelAdd(ch)
	return ch, nil
}
