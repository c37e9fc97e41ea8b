package server

import (
	"encoding/json"
	"net/http"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сессии
type DebugHandler struct {
	Session *engine.Session
}

func NewDebugHandler(s *engine.Session) *DebugHandler {
	return &DebugHandler{Session: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/units", h.handleDumpUnits)
	mux.HandleFunc("/debug/tasks", h.handleTasks)
}

// /debug/units - полный реестр юнитов, включая скрытых туманом
func (h *DebugHandler) handleDumpUnits(w http.ResponseWriter, r *http.Request) {
	units := make([]domain.Unit, 0)
	err := h.Session.Query(r.Context(), func(c *engine.Controller) {
		// Копии, чтобы не отдавать указатели за пределы горутины сессии
		for _, u := range c.World().Units() {
			units = append(units, *u)
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, units)
}

// /debug/tasks - отложенные задачи планировщика (шаги и порождения)
func (h *DebugHandler) handleTasks(w http.ResponseWriter, r *http.Request) {
	var dump []map[string]interface{}
	err := h.Session.Query(r.Context(), func(c *engine.Controller) {
		dump = c.Scheduler().DebugDump()
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, dump)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустой реестр), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
