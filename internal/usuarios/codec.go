package usuarios

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
)

// Encode сериализует коллекцию в JSON-массив плоских объектов.
//
// Порядок записей сохраняется. nil кодируется как [].
func Encode(items []Usuario) ([]byte, error) {
	if items == nil {
		items = []Usuario{}
	}
	return json.Marshal(items)
}

// Decode разбирает JSON-массив, записанный Encode.
//
// Числа сохраняются как json.Number, чтобы не терять точность id.
// Ошибки (всегда оборачивают serr.ErrCorruptSlot):
//   - данные не являются JSON-массивом объектов (включая null);
//   - после массива есть лишние данные;
//   - у записи нет строкового поля cedula;
//   - у записи есть вложенные объекты/массивы.
func Decode(data []byte) ([]Usuario, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", serr.ErrCorruptSlot, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected JSON array", serr.ErrCorruptSlot)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after array", serr.ErrCorruptSlot)
	}

	items := make([]Usuario, 0, len(raw))
	for i, m := range raw {
		if m == nil {
			return nil, fmt.Errorf("%w: item %d is null", serr.ErrCorruptSlot, i)
		}
		u := Usuario(m)
		if _, ok := m[KeyCedula].(string); !ok {
			return nil, fmt.Errorf("%w: item %d has no string cedula", serr.ErrCorruptSlot, i)
		}
		if err := u.checkFlat(); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", serr.ErrCorruptSlot, i, err)
		}
		items = append(items, u)
	}
	return items, nil
}
