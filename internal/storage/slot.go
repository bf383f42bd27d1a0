// Package storage содержит реализации "слота" — персистентного key-value
// хранилища, в которое хранилище пользователей целиком сохраняет коллекцию.
//
// Доступные бэкенды:
//   - FileSlot: файл <dir>/<key>.json в домашней директории пользователя;
//   - MemorySlot: map в памяти (тесты, эфемерный сервер);
//   - SQLSlot: таблица usuarios_slots в PostgreSQL (pgx) или SQLite;
//   - EncryptedSlot: обёртка, шифрующая значение любого слота.
package storage

import "context"

//go:generate mockgen -destination=mocks/slot_mock.go -package=mocks . Slot

// DefaultKey — ключ слота по умолчанию.
const DefaultKey = "camilo_usuarios"

// Slot — минимальный key-value интерфейс персистентного хранилища.
//
// Get возвращает ok=false, если ключа нет (это не ошибка).
// Delete отсутствующего ключа не является ошибкой.
type Slot interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
