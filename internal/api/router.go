package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"study-backend/internal/api/recovery"
	"study-backend/internal/api/respond"
	"study-backend/internal/core/study"
	"study-backend/internal/store"
)

// ServiceInfo is returned by the root endpoint.
type ServiceInfo struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(st store.Store) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	service := study.NewService(st)
	studyHandler := NewStudyHandler(service)
	healthHandler := NewHealthHandler(st)

	router.HandleFunc("/api", infoHandler).Methods("GET")
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	router.HandleFunc("/api/knowledge-base", studyHandler.GetKnowledgeBase).Methods("GET")
	router.HandleFunc("/api/knowledge-base", studyHandler.PutKnowledgeBase).Methods("PUT")

	router.HandleFunc("/api/prompts", studyHandler.GetPrompts).Methods("GET")
	router.HandleFunc("/api/prompts", studyHandler.PutPrompts).Methods("PUT")

	router.HandleFunc("/api/practice-history", studyHandler.GetPracticeHistory).Methods("GET")

	router.HandleFunc("/api/dialogue-phrases", studyHandler.GetDialoguePhrases).Methods("GET")
	router.HandleFunc("/api/dialogue-phrases", studyHandler.PutDialoguePhrases).Methods("PUT")

	return router
}

func infoHandler(w http.ResponseWriter, _ *http.Request) {
	respond.WriteJSON(w, http.StatusOK, ServiceInfo{
		Service: "study-backend",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"knowledge_base":   "/api/knowledge-base",
			"prompts":          "/api/prompts",
			"practice_history": "/api/practice-history",
			"dialogue_phrases": "/api/dialogue-phrases",
			"health":           "/api/health",
		},
	})
}
