package service

import (
	"context"
	"time"

	"proinvoice/internal/backup"
	"proinvoice/internal/domain"
	"proinvoice/internal/library"
	"proinvoice/internal/profile"
	"proinvoice/internal/session"
	"proinvoice/internal/store"
)

// BackupService defines whole-state export, restore, and the factory reset.
type BackupService interface {
	Export(ctx context.Context) (fileName string, data []byte, err error)
	Restore(ctx context.Context, raw []byte) error
	ResetAll(ctx context.Context, confirm bool) error
}

type backupService struct {
	backup   *backup.Service
	kv       store.KV
	profiles *profile.Store
	session  *session.Manager
	library  *library.Library
}

// NewBackupService creates a BackupService.
func NewBackupService(b *backup.Service, kv store.KV, profiles *profile.Store, sess *session.Manager, lib *library.Library) BackupService {
	return &backupService{backup: b, kv: kv, profiles: profiles, session: sess, library: lib}
}

func (s *backupService) Export(ctx context.Context) (string, []byte, error) {
	data, err := s.backup.Export()
	if err != nil {
		return "", nil, err
	}
	return backup.FileName(time.Now()), data, nil
}

func (s *backupService) Restore(ctx context.Context, raw []byte) error {
	return s.backup.Restore(ctx, raw)
}

// ResetAll wipes every stored collection and reseeds the defaults. The
// confirm flag must be set explicitly; the operation is not undoable.
func (s *backupService) ResetAll(ctx context.Context, confirm bool) error {
	if !confirm {
		return domain.ErrConfirmationRequired
	}
	if err := s.kv.ResetAll(ctx); err != nil {
		return err
	}
	s.profiles.ReplaceMarkups(ctx, domain.DefaultMarkupProfiles())
	s.profiles.ReplaceDeposits(ctx, domain.DefaultDepositProfiles())
	s.profiles.ReplaceMaterials(ctx, domain.DefaultMaterialProfiles())
	s.profiles.ReplaceBrandings(ctx, domain.DefaultBrandingProfiles())
	s.library.Replace(ctx, nil)
	s.session.ReplacePreferences(domain.DefaultPreferences())
	s.session.ReplaceDocument(domain.DefaultDocument(time.Now()))
	return nil
}
