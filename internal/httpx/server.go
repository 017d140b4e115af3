package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// NewRouter собирает chi-роутер с базовыми middleware. Маршрутизация — забота
// chi, обработчики остаются тонкими адаптерами над сервисами.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError переводит доменные ошибки в HTTP-статусы: валидация — 400,
// «не найдено» — 404, нехватка стока — 409, остальное — 500 без деталей.
// Неожиданные ошибки уходят в лог: клиенту деталей хранилища не показываем.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case domain.IsInsufficientStock(err):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case domain.IsValidation(err) ||
		errors.Is(err, domain.ErrProductNameTaken) || errors.Is(err, domain.ErrCustomerEmailTaken):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithFields(log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			}).Error("request failed")
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
