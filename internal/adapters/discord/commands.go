package discord

import "github.com/bwmarrin/discordgo"

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "points",
		Description: "Puntos de actividad de un miembro del staff",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Miembro a consultar (por defecto vos)",
			Required:    false,
		}},
	},
	{
		Name:        "leaderboard",
		Description: "Ranking de actividad del staff (solo staff)",
	},
}
