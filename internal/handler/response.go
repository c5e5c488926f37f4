package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/service"
)

// successEnvelope is the shape every 2xx response uses.
type successEnvelope struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Timestamp  string      `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, successEnvelope{
		StatusCode: status,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// respondPaginated spreads the page metadata at the top level next to
// the data slice.
func respondPaginated(w http.ResponseWriter, message string, data interface{}, page *service.PageInfo) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"statusCode": http.StatusOK,
		"message":    message,
		"data":       data,
		"total":      page.Total,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": page.TotalPages,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
