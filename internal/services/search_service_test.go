package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSerperForTest(t *testing.T, handler http.HandlerFunc) *SerperSearchService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewSerperSearchService("test-key")
	svc.baseURL = server.URL
	return svc
}

func TestSerperSearch_DigestsAnswerBoxAndOrganic(t *testing.T) {
	svc := newSerperForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Chiang Mai coordinates", body["q"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"answerBox": {"answer": "18.7883 N, 98.9853 E"},
			"organic": [
				{"title": "Chiang Mai", "snippet": "A city in northern Thailand."},
				{"title": "Geography", "snippet": "Located in a mountain valley."}
			]
		}`))
	})

	result := svc.Search(context.Background(), "Chiang Mai coordinates")
	assert.Equal(t, "18.7883 N, 98.9853 E\nChiang Mai: A city in northern Thailand.\nGeography: Located in a mountain valley.", result)
}

func TestSerperSearch_CapsOrganicResults(t *testing.T) {
	svc := newSerperForTest(t, func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{"organic": []map[string]string{}}
		organic := payload["organic"].([]map[string]string)
		for i := 0; i < 8; i++ {
			organic = append(organic, map[string]string{"title": "t", "snippet": "s"})
		}
		payload["organic"] = organic
		json.NewEncoder(w).Encode(payload)
	})

	result := svc.Search(context.Background(), "busy query")
	assert.Len(t, splitNonEmptyLines(result), 5)
}

func TestSerperSearch_BadStatusReturnsEmpty(t *testing.T) {
	svc := newSerperForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	assert.Equal(t, "", svc.Search(context.Background(), "anything"))
}

func TestSerperSearch_UnreachableReturnsEmpty(t *testing.T) {
	svc := NewSerperSearchService("test-key")
	svc.baseURL = "http://127.0.0.1:1"

	assert.Equal(t, "", svc.Search(context.Background(), "anything"))
}

func TestSerperSearch_MalformedBodyReturnsEmpty(t *testing.T) {
	svc := newSerperForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	assert.Equal(t, "", svc.Search(context.Background(), "anything"))
}

func splitNonEmptyLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	return lines
}
