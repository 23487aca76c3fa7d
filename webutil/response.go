package webutil

import (
	"encoding/json"
	"log"
	"net/http"
)

// headerSentMarker is set once a handler has committed a response body.
const headerSentMarker = "X-Response-Committed"

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: Failed to marshal JSON response: %v", err)
		w.Header().Set(HeaderContentType, ContentTypeJSONUTF8)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	RespondWithBytes(w, status, ContentTypeJSONUTF8, response)
}

// RespondWithBytes writes body with the given content type and marks the response committed.
func RespondWithBytes(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set(HeaderContentType, contentType)
	w.Header().Set(headerSentMarker, "1")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func HasResponseWriterSentHeader(w http.ResponseWriter) bool {
	return w.Header().Get(headerSentMarker) != ""
}
