package services

import (
	"context"
	"encoding/json"
	"fmt"

	"sweat-battle-system/logging"
	"sweat-battle-system/models"
)

// ObjectUploader is satisfied by utils.R2Client.
type ObjectUploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// R2BattleArchiver writes each finished battle as JSON to battles/<id>.json.
type R2BattleArchiver struct {
	uploader ObjectUploader
}

func NewR2BattleArchiver(u ObjectUploader) *R2BattleArchiver {
	return &R2BattleArchiver{uploader: u}
}

func BattleArchiveKey(battleID string) string {
	return fmt.Sprintf("battles/%s.json", battleID)
}

func (a *R2BattleArchiver) ArchiveBattle(ctx context.Context, b *models.Battle) error {
	body, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode battle %s: %w", b.ID, err)
	}
	url, err := a.uploader.Upload(ctx, BattleArchiveKey(b.ID), body, "application/json")
	if err != nil {
		return err
	}
	logging.Info("battle archived", logging.Fields{"battle_id": b.ID, "url": url})
	return nil
}
