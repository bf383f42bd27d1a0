package usuarios

import (
	"context"
	"fmt"
	"sync"
	"time"

	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-usuarios/internal/storage"
)

// isoMillis — формат fechaRegistro: ISO-8601 в UTC с миллисекундами.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Store — потокобезопасное хранилище пользователей.
//
// Хранилище создаётся явно (Open) и передаётся тем, кому оно нужно.
// Каждая изменяющая операция (Add, удачный Remove, Clear) синхронно
// сохраняет коллекцию в слот до возврата. Если сохранить не удалось,
// изменение в памяти откатывается и возвращается ошибка.
type Store struct {
	mu    sync.RWMutex
	slot  storage.Slot
	key   string
	now   func() time.Time
	items []Usuario

	obsMu     sync.Mutex
	observers []observerEntry
	nextObsID int
}

// Option настраивает Store.
type Option func(*Store)

// WithKey задаёт ключ слота (по умолчанию storage.DefaultKey).
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open создаёт хранилище и загружает коллекцию из слота.
//
// Поведение:
//   - ключа в слоте нет — коллекция пустая;
//   - в слоте валидный JSON-массив — коллекция из него;
//   - данные битые — ошибка, оборачивающая serr.ErrCorruptSlot.
func Open(ctx context.Context, slot storage.Slot, opts ...Option) (*Store, error) {
	s := &Store{
		slot: slot,
		key:  storage.DefaultKey,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.items = items
	return s, nil
}

// Key возвращает ключ слота.
func (s *Store) Key() string {
	return s.key
}

// Add регистрирует нового пользователя.
//
// В коллекцию попадает копия u с проставленными id (мс Unix),
// fechaRegistro (ISO-8601 UTC) и activo=true. Возвращается исходная
// запись u без этих полей.
//
// Ошибки:
//   - serr.ErrInvalidInput — нет cedula или значения не скалярные;
//   - serr.ErrDuplicateCedula — такая cedula уже есть;
//   - ошибка слота — коллекция при этом не меняется.
func (s *Store) Add(ctx context.Context, u Usuario) (Usuario, error) {
	if err := u.validate(); err != nil {
		return nil, err
	}
	cedula := u.Cedula()

	s.mu.Lock()
	if s.indexOf(cedula) >= 0 {
		s.mu.Unlock()
		return nil, serr.ErrDuplicateCedula
	}

	now := s.now().UTC()
	rec := u.Clone()
	rec[KeyID] = now.UnixMilli()
	rec[KeyFechaRegistro] = now.Format(isoMillis)
	rec[KeyActivo] = true

	prev := s.items
	s.items = append(s.items[:len(s.items):len(s.items)], rec)
	if err := s.saveLocked(ctx); err != nil {
		s.items = prev
		s.mu.Unlock()
		return nil, err
	}
	ev := Event{Op: OpAdd, Cedula: cedula, Total: len(s.items)}
	s.mu.Unlock()

	s.notify(ev)
	return u, nil
}

// FindByCedula возвращает копию первой записи с такой cedula.
func (s *Store) FindByCedula(cedula string) (Usuario, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(cedula); i >= 0 {
		return s.items[i].Clone(), true
	}
	return nil, false
}

// Remove удаляет первую запись с такой cedula.
//
// Возвращает true, если запись была удалена, false — если её не было
// (в этом случае слот не трогается). Ошибка возможна только при сохранении.
func (s *Store) Remove(ctx context.Context, cedula string) (bool, error) {
	s.mu.Lock()
	i := s.indexOf(cedula)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}

	prev := s.items
	next := make([]Usuario, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	s.items = next

	if err := s.saveLocked(ctx); err != nil {
		s.items = prev
		s.mu.Unlock()
		return false, err
	}
	ev := Event{Op: OpRemove, Cedula: cedula, Total: len(s.items)}
	s.mu.Unlock()

	s.notify(ev)
	return true, nil
}

// Count возвращает число записей.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Clear очищает коллекцию и удаляет ключ из слота целиком
// (а не записывает пустой список).
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.slot.Delete(ctx, s.key); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete slot %q: %w", s.key, err)
	}
	s.items = []Usuario{}
	s.mu.Unlock()

	s.notify(Event{Op: OpClear})
	return nil
}

// List возвращает копию коллекции в порядке регистрации.
func (s *Store) List() []Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Usuario, len(s.items))
	for i, u := range s.items {
		out[i] = u.Clone()
	}
	return out
}

// Reload перечитывает коллекцию из слота, заменяя состояние в памяти.
// При ошибке состояние в памяти не меняется.
func (s *Store) Reload(ctx context.Context) error {
	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	total := len(items)
	s.mu.Unlock()

	s.notify(Event{Op: OpReload, Total: total})
	return nil
}

func (s *Store) load(ctx context.Context) ([]Usuario, error) {
	data, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	if !ok {
		return []Usuario{}, nil
	}

	items, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("slot %q: %w", s.key, err)
	}
	return items, nil
}

// saveLocked сериализует коллекцию и пишет её в слот. Вызывается под s.mu.
func (s *Store) saveLocked(ctx context.Context) error {
	data, err := Encode(s.items)
	if err != nil {
		return fmt.Errorf("encode usuarios: %w", err)
	}
	if err := s.slot.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}

// indexOf — линейный поиск первой записи с cedula. Вызывается под s.mu.
func (s *Store) indexOf(cedula string) int {
	for i, u := range s.items {
		if u.Cedula() == cedula {
			return i
		}
	}
	return -1
}
