package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// BadgeMetadata - пользовательский тип для CIP-25 метаданных бейджа (JSONB)
type BadgeMetadata struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	MediaType   string            `json:"media_type,omitempty"`
	Attributes  map[string]string `json:"attributes"`
}

// Scan реализует интерфейс sql.Scanner для BadgeMetadata
func (m *BadgeMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = BadgeMetadata{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}
	if len(bytes) == 0 {
		*m = BadgeMetadata{}
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// Value реализует интерфейс driver.Valuer для BadgeMetadata
func (m BadgeMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// NFTBadge представляет бейдж, выпущенный за идеальный результат.
// Создается только как побочный эффект успешного (симулированного) минтинга.
type NFTBadge struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	QuizID        uint          `gorm:"not null;index" json:"quiz_id"`
	TransactionID string        `gorm:"size:120;not null;uniqueIndex" json:"transaction_id"`
	PolicyID      string        `gorm:"size:120;not null" json:"policy_id"`
	AssetName     string        `gorm:"size:120;not null" json:"asset_name"`
	WalletAddress string        `gorm:"size:120;not null" json:"wallet_address"`
	Metadata      BadgeMetadata `gorm:"type:jsonb;not null" json:"metadata"`
	MintedAt      time.Time     `gorm:"not null;index" json:"minted_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (NFTBadge) TableName() string {
	return "nft_badges"
}
