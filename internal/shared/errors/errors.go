// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в store, storage и api слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import (
	"errors"
	"fmt"
)

var (
	// Входные данные невалидны (пустая cedula, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

// только для usuarios
var (
	// Пользователь с такой cedula уже зарегистрирован.
	// errors.Is(ErrDuplicateCedula, ErrAlreadyExists) == true
	ErrDuplicateCedula = fmt.Errorf("usuario con esta cedula: %w", ErrAlreadyExists)
	// В слоте хранилища лежат данные, которые не удалось разобрать
	ErrCorruptSlot = errors.New("corrupt storage slot")
	// Не удалось расшифровать слот (неверная парольная фраза или битые данные)
	ErrDecrypt = errors.New("decryption failed (wrong passphrase or corrupted data)")
)
