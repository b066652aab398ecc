package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-StayService/internal/api/handlers"
	"github.com/m04kA/SMC-StayService/internal/infra/cache/idempotency"
)

const (
	// IdempotencyKeyHeader заголовок с ключом идемпотентности
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader выставляется в ответе, восстановленном из хранилища
	IdempotentReplayHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 255

	msgIdempotencyKeyTooLong    = "Idempotency-Key is too long."
	msgIdempotencyKeyInProgress = "A request with this Idempotency-Key is already in progress."
)

// IdempotencyStore хранилище ответов по ключу идемпотентности
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*idempotency.Record, bool, error)
	Reserve(ctx context.Context, key string) (bool, error)
	Save(ctx context.Context, key string, rec *idempotency.Record) error
	Release(ctx context.Context, key string) error
}

// bodyRecorder пишет ответ клиенту и параллельно копирует его для сохранения
type bodyRecorder struct {
	statusRecorder
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.statusRecorder.Write(b)
}

// Idempotency повторяет сохраненный ответ для запросов с тем же Idempotency-Key.
// Ключ привязан к пользователю, методу и пути и занимается до вызова обработчика:
// параллельный запрос с тем же ключом получает 409.
// Ответы 5xx не сохраняются, ключ освобождается и запрос можно повторить.
// Middleware должен стоять после Auth.
func Idempotency(store IdempotencyStore, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := r.Header.Get(IdempotencyKeyHeader)
			if clientKey == "" || store == nil {
				next.ServeHTTP(w, r)
				return
			}
			if len(clientKey) > maxIdempotencyKeyLen {
				handlers.RespondBadRequest(w, msgIdempotencyKeyTooLong)
				return
			}

			key := scopedKey(r, clientKey)

			// 1. Уже обработанный запрос отдаем из хранилища
			rec, found, err := store.Get(r.Context(), key)
			if err != nil {
				// Хранилище недоступно: обрабатываем запрос без гарантии идемпотентности
				logger.Warn("%s %s - idempotency lookup failed: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}
			if found {
				respondStored(w, r, rec, logger)
				return
			}

			// 2. Занимаем ключ
			reserved, err := store.Reserve(r.Context(), key)
			if err != nil {
				logger.Warn("%s %s - idempotency reservation failed: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}
			if !reserved {
				// Ключ заняли между Get и Reserve
				rec, found, err = store.Get(r.Context(), key)
				if err != nil || !found {
					rec = &idempotency.Record{}
				}
				respondStored(w, r, rec, logger)
				return
			}

			defer func() {
				if p := recover(); p != nil {
					_ = store.Release(r.Context(), key)
					panic(p)
				}
			}()

			// 3. Выполняем запрос и запоминаем ответ
			recorder := &bodyRecorder{statusRecorder: statusRecorder{ResponseWriter: w}}
			next.ServeHTTP(recorder, r)

			status := recorder.statusCode()
			if status >= http.StatusInternalServerError {
				if err := store.Release(r.Context(), key); err != nil {
					logger.Warn("%s %s - failed to release idempotency key: %v", r.Method, r.URL.Path, err)
				}
				return
			}

			saved := &idempotency.Record{
				Status:      status,
				ContentType: recorder.Header().Get("Content-Type"),
				Body:        recorder.body.Bytes(),
				OccurredAt:  time.Now().UTC(),
			}
			if err := store.Save(r.Context(), key, saved); err != nil {
				logger.Warn("%s %s - failed to save idempotent response: %v", r.Method, r.URL.Path, err)
			}
		})
	}
}

// respondStored повторяет сохраненный ответ, либо отвечает 409, пока исходный запрос выполняется
func respondStored(w http.ResponseWriter, r *http.Request, rec *idempotency.Record, logger Logger) {
	if rec.InFlight() {
		logger.Warn("%s %s - request with the same idempotency key is in progress", r.Method, r.URL.Path)
		handlers.RespondConflict(w, msgIdempotencyKeyInProgress)
		return
	}

	logger.Info("%s %s - replaying response for idempotency key", r.Method, r.URL.Path)
	if rec.ContentType != "" {
		w.Header().Set("Content-Type", rec.ContentType)
	}
	w.Header().Set(IdempotentReplayHeader, "true")
	w.WriteHeader(rec.Status)
	_, _ = w.Write(rec.Body)
}

func scopedKey(r *http.Request, clientKey string) string {
	user := "anonymous"
	if identity, ok := GetIdentity(r.Context()); ok {
		user = strconv.FormatInt(identity.UserID, 10)
	}
	return fmt.Sprintf("%s:%s:%s:%s", user, r.Method, r.URL.Path, clientKey)
}
