package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL  string
	DiscordToken string
	DiscordGuild string

	StaffRoleName          string
	MessageWeight          int
	ModActionWeight        int
	LeaderboardChannelID   string // opcional; si está vacío se busca por nombre
	LeaderboardChannelName string
	ResetIntervalDays      int
	HTTPAddr               string // opcional, default :8080
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("faltante env %s", k)
		}
		return v
	}
	getInt := func(k string, def int) int {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("env %s: valor inválido %q", k, v)
		}
		return n
	}

	cfg := Config{
		DatabaseURL:  get("DATABASE_URL", true),
		DiscordToken: get("DISCORD_BOT_TOKEN", true),
		DiscordGuild: get("DISCORD_GUILD_ID", true),

		StaffRoleName:          get("STAFF_ROLE_NAME", false),
		MessageWeight:          getInt("MESSAGE_WEIGHT", 1),
		ModActionWeight:        getInt("MOD_ACTION_WEIGHT", 5),
		LeaderboardChannelID:   get("LEADERBOARD_CHANNEL_ID", false),
		LeaderboardChannelName: get("LEADERBOARD_CHANNEL_NAME", false),
		ResetIntervalDays:      getInt("RESET_INTERVAL_DAYS", 7),
		HTTPAddr:               get("HTTP_ADDR", false),
	}
	if cfg.StaffRoleName == "" {
		cfg.StaffRoleName = "Staff"
	}
	if cfg.LeaderboardChannelName == "" {
		cfg.LeaderboardChannelName = "staff-activity"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	return cfg
}
