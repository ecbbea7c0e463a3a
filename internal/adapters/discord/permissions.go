package discord

import "github.com/bwmarrin/discordgo"

// requireStaff: el leaderboard interactivo es solo para el rol de staff.
// La negativa es el único fallo visible para el usuario en todo el bot.
func (r *Router) requireStaff(s *discordgo.Session, ic *discordgo.InteractionCreate) bool {
	if ic.Member != nil && ic.Member.User != nil && r.gw.HasStaffRole(ic.GuildID, ic.Member.User.ID) {
		return true
	}
	_ = SendEphemeral(s, ic, "🔒 You need the staff role to use this command.")
	return false
}
