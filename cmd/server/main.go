package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"proinvoice/internal/backup"
	"proinvoice/internal/config"
	"proinvoice/internal/handler"
	"proinvoice/internal/library"
	"proinvoice/internal/profile"
	"proinvoice/internal/render"
	"proinvoice/internal/router"
	"proinvoice/internal/service"
	"proinvoice/internal/session"
	"proinvoice/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := store.NewDB(&cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open blob store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	kv := store.NewKV(db)

	// Initialize state
	profiles := profile.NewStore(ctx, kv)
	sess := session.NewManager(ctx, kv, cfg.Autosave.Debounce)
	lib := library.New(ctx, kv)
	renderer := render.NewRenderer(&cfg.PDF)
	snapshotter := backup.NewService(profiles, sess, lib)

	// Initialize services
	documentSvc := service.NewDocumentService(sess, profiles)
	preferencesSvc := service.NewPreferencesService(sess, profiles)
	profileSvc := service.NewProfileService(profiles)
	librarySvc := service.NewLibraryService(lib, sess)
	backupSvc := service.NewBackupService(snapshotter, kv, profiles, sess, lib)
	exportSvc := service.NewExportService(sess, profiles, renderer)

	// Initialize handlers
	documentH := handler.NewDocumentHandler(documentSvc)
	preferencesH := handler.NewPreferencesHandler(preferencesSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	libraryH := handler.NewLibraryHandler(librarySvc)
	backupH := handler.NewBackupHandler(backupSvc)
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(documentH, preferencesH, profileH, libraryH, backupH, exportH, healthH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	log.Print("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Flush the draft so the last debounce window is not lost.
	sess.Flush(shutdownCtx)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
