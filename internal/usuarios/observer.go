package usuarios

import "github.com/IvanChernomyrdin/go-usuarios/internal/shared/logger"

// Op — тип изменения коллекции.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
	OpReload Op = "reload"
)

// Event описывает изменение коллекции.
//
// Cedula пустая для clear и reload. Total — число записей после изменения.
type Event struct {
	Op     Op
	Cedula string
	Total  int
}

// Observer получает уведомления об изменениях.
//
// Уведомление приходит синхронно, после успешного сохранения в слот,
// вне блокировки хранилища и в порядке подписки. Из обработчика можно
// вызывать методы Store.
type Observer interface {
	UsuariosChanged(Event)
}

// ObserverFunc адаптирует функцию к Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) UsuariosChanged(e Event) { f(e) }

type observerEntry struct {
	id  int
	obs Observer
}

// Subscribe подписывает o на изменения. Возвращённая функция отменяет подписку.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	s.nextObsID++
	id := s.nextObsID
	s.observers = append(s.observers, observerEntry{id: id, obs: o})

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()

		for i, e := range s.observers {
			if e.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(ev Event) {
	s.obsMu.Lock()
	obs := make([]Observer, len(s.observers))
	for i, e := range s.observers {
		obs[i] = e.obs
	}
	s.obsMu.Unlock()

	for _, o := range obs {
		o.UsuariosChanged(ev)
	}
}

// LogObserver пишет в лог каждое сохранение коллекции.
func LogObserver(l *logger.Logger) Observer {
	return ObserverFunc(func(e Event) {
		l.LogSaved(string(e.Op), e.Cedula, e.Total)
	})
}
