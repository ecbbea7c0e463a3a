package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	discordadapter "github.com/jose-valero/staff-tracker-bot/internal/adapters/discord"
	"github.com/jose-valero/staff-tracker-bot/internal/adapters/web"
	"github.com/jose-valero/staff-tracker-bot/internal/app/service"
	"github.com/jose-valero/staff-tracker-bot/internal/infra/config"
	"github.com/jose-valero/staff-tracker-bot/internal/infra/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// DB
	db, err := storage.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}
	log.Println("✅ DB lista y migrada")

	// Repos
	activityRepo := storage.NewActivityRepo(db)
	configRepo := storage.NewConfigRepo(db)

	// Keep-alive web (sidecar, sin estado compartido con el ledger)
	keepalive := web.New()
	go keepalive.Start(cfg.HTTPAddr)

	// Discord session
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal(err)
	}
	s.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildModeration |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent
	if err := s.Open(); err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	log.Printf("✅ Conectado como %s (%s)", s.State.User.Username, s.State.User.ID)

	// Gateway + services
	gw := discordadapter.NewGateway(s, cfg.DiscordGuild, cfg.StaffRoleName, cfg.LeaderboardChannelID, cfg.LeaderboardChannelName)
	weights := service.Weights{Message: cfg.MessageWeight, ModAction: cfg.ModActionWeight}
	activitySvc := service.NewActivityService(activityRepo, weights)
	boardSvc := service.NewLeaderboardService(activityRepo, gw, weights, cfg.DiscordGuild)
	auditSvc := service.NewAuditService(activityRepo, gw)
	sched := service.NewScheduler(activityRepo, configRepo, boardSvc, gw, cfg.ResetIntervalDays)

	// Router
	r := discordadapter.NewRouter(s, cfg.DiscordGuild, gw, activitySvc, boardSvc, auditSvc, configRepo)
	if err := r.Register(); err != nil {
		log.Fatalf("registrando comandos: %v", err)
	}
	r.Handlers()
	log.Printf("✅ comandos registrados en guild %s", cfg.DiscordGuild)

	// Scheduler (tick grueso; el primer arranque solo fija el límite)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.EnsureBoundary(ctx)
	go sched.Run(ctx)

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
}
