package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rhteam/contratos-rh/internal/admin"
	"github.com/rhteam/contratos-rh/internal/broker"
	"github.com/rhteam/contratos-rh/internal/config"
	"github.com/rhteam/contratos-rh/internal/contract"
	"github.com/rhteam/contratos-rh/internal/db"
	"github.com/rhteam/contratos-rh/internal/handlers"
	"github.com/rhteam/contratos-rh/internal/repository"
)

// cmd/api/main.go
func main() {
	cfg := config.Load() // .env

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)
	slog.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB, "upload_dir", cfg.UploadDir)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed")
	flag.Parse()
	if *task != "" {
		switch *task {
		case "seed":
			// conecta somente o necessário para o seed
			client, err := db.NewMongoClient(cfg.MongoURI)
			if err != nil {
				slog.Error("mongo_connect_error", "err", err)
				os.Exit(1)
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			repo := repository.NewFuncionarioRepository(client.Database(cfg.MongoDB))
			if err := repo.EnsureIndexes(context.Background()); err != nil {
				slog.Error("ensure_indexes_error", "err", err)
				os.Exit(1)
			}
			if err := admin.SeedFuncionarios(context.Background(), repo, slog.Default()); err != nil {
				slog.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			slog.Info("seed_done")
			return // encerra o processo sem subir HTTP
		default:
			slog.Error("unknown_admin_task", "task", *task)
			os.Exit(2)
		}
	}

	// conecta Mongo
	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	// publisher (Rabbit)
	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
	if err != nil {
		log.Fatalf("rabbitmq connect error: %v", err)
	}
	defer pub.Close()

	database := client.Database(cfg.MongoDB)
	funcionarios := repository.NewFuncionarioRepository(database)
	contratos := repository.NewContratoRepository(database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := funcionarios.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatalf("funcionario indexes error: %v", err)
	}
	if err := contratos.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatalf("contrato indexes error: %v", err)
	}
	cancel()

	resolver := contract.NewResolver(cfg.Empresa)
	renderer := contract.NewPDFRenderer(cfg.WkhtmltopdfPath, cfg.PDFTimeout)
	storage := contract.NewStorage(cfg.UploadDir, cfg.MaxUploadSize, contratos, slog.Default())

	fh := &handlers.FuncionarioHandler{
		Repo:                 funcionarios,
		Contratos:            contratos,
		Pub:                  pub,
		SearchMaxResults:     cfg.SearchMaxResults,
		SearchMinQueryLength: cfg.SearchMinQueryLength,
	}
	ch := &handlers.ContratoHandler{
		Funcionarios:  funcionarios,
		Contratos:     contratos,
		Resolver:      resolver,
		Renderer:      renderer,
		Store:         storage,
		Pub:           pub,
		UploadDir:     cfg.UploadDir,
		MaxUploadSize: cfg.MaxUploadSize,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", fh.Health)
	mux.HandleFunc("/buscar_funcionario", fh.Buscar)
	mux.HandleFunc("/cadastrar_funcionario", fh.Cadastrar)
	mux.HandleFunc("/listar_funcionarios", fh.Listar)
	mux.HandleFunc("/funcionario/", fh.FuncionarioByID)
	mux.HandleFunc("/gerar_contrato", ch.Gerar)
	mux.HandleFunc("/assinar_contrato/", ch.Assinar)
	mux.HandleFunc("/upload_contrato_assinado/", ch.UploadAssinado)
	mux.HandleFunc("/uploads/", ch.Uploads)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           logMiddleware(mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	sctx, scancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		slog.Error("graceful shutdown error", "err", err)
	}
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("http_request", "method", r.Method, "path", r.URL.Path, "duration", fmtDuration(time.Since(start)))
	})
}

func fmtDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
