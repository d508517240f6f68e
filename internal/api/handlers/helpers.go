package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

var errExtraJSON = errors.New("body must contain only one JSON object")

// decodeStrict parses the request body into v, rejecting unknown fields and
// trailing content. Callers translate the error into a 400.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errExtraJSON
	}
	return nil
}

// decodeBody is the shared 400 path for request bodies: unknown fields and
// type mismatches report "invalid json body", trailing content its own
// message. Returns false after writing the error response.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeStrict(r, v); err != nil {
		msg := "invalid json body"
		if errors.Is(err, errExtraJSON) {
			msg = errExtraJSON.Error()
		}
		writeError(w, r, http.StatusBadRequest, msg)
		return false
	}
	return true
}

// pathID parses a numeric path segment registered as {name} in the route
// pattern.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
