package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithErrors writes an error response under the "errors" key.
// The value may be a string, a list of messages or a field->messages map.
func RespondWithErrors(w http.ResponseWriter, code int, errs interface{}) {
	RespondWithJSON(w, code, map[string]interface{}{"errors": errs})
}

// RespondWithMessage writes an informational response under the "message" key
func RespondWithMessage(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"message": message})
}
