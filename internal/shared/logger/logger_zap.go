// Package logger содержит общий логгер для server и cli.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack) и удобные методы для логирования HTTP-запросов и изменений
// хранилища пользователей.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultDir — каталог логов по умолчанию (относительно рабочей директории).
var DefaultDir = filepath.Join("runtime", "logs")

// Logger представляет обёртку над zap.Logger.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type Logger struct {
	*zap.Logger
}

// Options — параметры файлового логгера.
type Options struct {
	// Dir — каталог, в котором создаётся файл. Пусто — DefaultDir.
	Dir string
	// File — имя файла лога, например "server.log".
	File string
	// Level — debug|info|warn|error. Пусто — info.
	Level string
}

// New создаёт файловый zap-логгер.
//
// Для файлов включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func New(opts Options) *Logger {
	dir := opts.Dir
	if dir == "" {
		dir = DefaultDir
	}
	_ = os.MkdirAll(dir, 0755)

	file := opts.File
	if file == "" {
		file = "usuarios.log"
	}

	// lumberjack отвечает за ротацию файлов
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, file),
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // дней
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		writer,
		parseLevel(opts.Level),
	)

	return &Logger{Logger: zap.New(core, zap.AddCaller())}
}

// Nop возвращает логгер, который ничего не пишет. Удобно в тестах.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// duration — длительность обработки запроса в миллисекундах.
func (l *Logger) LogRequest(requestID, method, uri string, status, responseSize int, duration float64) {
	l.Info("HTTP request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	)
}

// LogSaved пишет сообщение о сохранении коллекции пользователей в слот.
func (l *Logger) LogSaved(op, cedula string, total int) {
	l.Info("usuarios guardados",
		zap.String("op", op),
		zap.String("cedula", cedula),
		zap.Int("total", total),
	)
}

func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zap.InfoLevel
	}
	return lvl
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
