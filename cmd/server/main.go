package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/yourorg/guiapericial/internal/config"
	appdb "github.com/yourorg/guiapericial/internal/db"
	"github.com/yourorg/guiapericial/internal/handlers"
	"github.com/yourorg/guiapericial/internal/mailer"
	"github.com/yourorg/guiapericial/internal/routes"
	"github.com/yourorg/guiapericial/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		// margen por encima del límite más alto de adjuntos (10 MiB)
		BodyLimit:    12 << 20,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(logger.New())
	app.Use(recover.New())

	// ============================================================================
	// CONEXIÓN A MONGODB
	// ============================================================================
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := appdb.Connect(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		log.Fatalf("❌ Error de conexión a MongoDB: %v", err)
	}
	log.Println("✅ Conectado a MongoDB")

	st := store.NewMongo(client.Database(cfg.DBNombre))
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := appdb.EnsureIndexes(ctx, st.Collection()); err != nil {
		log.Fatalf("❌ Error creando índices: %v", err)
	}
	cancel()

	// ============================================================================
	// DEPENDENCIAS COMPARTIDAS (transporte SMTP y handlers)
	// ============================================================================
	sender := mailer.NewSMTP(cfg)

	auth := handlers.NewAuthHandler(st, sender, cfg)
	comprobantes := handlers.NewComprobantesHandler(sender, cfg)
	consultas := handlers.NewConsultasHandler(sender, cfg)
	health := handlers.NewHealthHandler(client)

	routes.Register(app, cfg, auth, comprobantes, consultas, health)

	// ============================================================================
	// GRACEFUL SHUTDOWN
	// ============================================================================
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\n🛑 Señal de terminación recibida, cerrando servidor...")

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️  Error cerrando servidor: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("⚠️  Error cerrando conexión a MongoDB: %v", err)
		}

		log.Println("✅ Servidor cerrado correctamente")
		os.Exit(0)
	}()

	log.Printf("🚀 Servidor backend corriendo en http://localhost:%s", cfg.Puerto)
	if err := app.Listen(":" + cfg.Puerto); err != nil {
		log.Fatal(err)
	}
}
