package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"oli3d-catalog/internal/logger"

	"go.uber.org/zap"
)

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("failed to write response", zap.Error(err))
	}
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, map[string]string{"error": message}, code)
}

// ParseIntOrDefault returns fallback for blank or malformed input.
func ParseIntOrDefault(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

// SplitCSV splits a comma separated query value, dropping blanks.
func SplitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
