package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем (Redis).
// Используется для rate limiting и cooldown AI-генерации; ранжирование
// лидерборда НЕ кешируется - оно пересчитывается при каждом запросе.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	Exists(key string) (bool, error)
	// IncrementWithTTL атомарно увеличивает счетчик и выставляет TTL при первом инкременте
	IncrementWithTTL(key string, ttl time.Duration) (int64, error)
}
