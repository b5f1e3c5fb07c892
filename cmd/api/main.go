package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/authadmin"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET não configurado")
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("falha ao conectar no banco: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("falha ao conectar no RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	statusRepo := database.NewStatusRepository(db)
	profileRepo := database.NewProfileRepository(db)
	interactionRepo := database.NewInteractionRepository(db)

	// 2. Gateways e Adapters
	queryCache := cache.New()
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	adminAPI := authadmin.NewClient(cfg.AdminAPIURL)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)

	// 3. Worker (consome a fila de atribuições e dispara os emails)
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go worker.Start(queue.QueueName)

	// 4. UseCases
	listLeadsUC := usecase.NewListLeadsUseCase(leadRepo, queryCache)
	getLeadUC := usecase.NewGetLeadUseCase(leadRepo, queryCache)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, profileRepo, queryCache, producer)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo, queryCache, producer)
	deleteLeadUC := usecase.NewDeleteLeadUseCase(leadRepo, queryCache)
	statusUC := usecase.NewStatusUseCase(statusRepo, leadRepo, queryCache)
	usersUC := usecase.NewUsersUseCase(profileRepo, adminAPI, mailSender, queryCache)
	interacoesUC := usecase.NewInteracoesUseCase(interactionRepo, queryCache)
	importUC := usecase.NewImportLeadsUseCase(leadRepo, queryCache)
	dashboardUC := usecase.NewDashboardUseCase(listLeadsUC, statusUC, usersUC)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(listLeadsUC, getLeadUC, createLeadUC, updateLeadUC, deleteLeadUC)
	statusHandler := handlers.NewStatusHandler(statusUC)
	userHandler := handlers.NewUserHandler(usersUC)
	interactionHandler := handlers.NewInteractionHandler(interacoesUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	importHandler := handlers.NewImportHandler(importUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, cfg.AdminAPIURL)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Rotas autenticadas
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.JWTSecret, profileRepo))

		r.Get("/leads", leadHandler.HandleList)
		r.Post("/leads", leadHandler.HandleCreate)
		r.Get("/leads/{id}", leadHandler.HandleGet)
		r.Patch("/leads/{id}", leadHandler.HandleUpdate)
		r.Delete("/leads/{id}", leadHandler.HandleDelete)

		r.Get("/leads/{id}/interacoes", interactionHandler.HandleList)
		r.Post("/leads/{id}/interacoes", interactionHandler.HandleCreate)
		r.Delete("/interacoes/{id}", interactionHandler.HandleDelete)

		r.Get("/status", statusHandler.HandleList)
		r.Get("/profiles", userHandler.HandleListProfiles)
		r.Put("/profiles/{id}", userHandler.HandleUpdateProfile)
		r.Get("/dashboard", dashboardHandler.Handle)

		// Corte de rota para admin; os casos de uso revalidam a role
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/leads/import", importHandler.Handle)

			r.Post("/status", statusHandler.HandleCreate)
			r.Put("/status/{id}", statusHandler.HandleUpdate)
			r.Delete("/status/{id}", statusHandler.HandleDelete)

			r.Get("/users", userHandler.HandleListUsers)
			r.Post("/users", userHandler.HandleCreate)
			r.Put("/users/{id}/role", userHandler.HandleUpdateRole)
			r.Delete("/users/{id}", userHandler.HandleDelete)
		})
	})

	addr := ":" + cfg.Port
	log.Printf("🔥 Server LigueLeads rodando na porta %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
