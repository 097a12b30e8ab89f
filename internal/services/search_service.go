package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

type SearchServiceInterface interface {
	// Search runs a web search and returns a text digest of the top
	// results. A failed lookup returns "" so the planning loop can
	// keep reasoning with "no data".
	Search(ctx context.Context, query string) string
}

// SerperSearchService queries the Serper (Google Search) API. Used for
// geocoding place names and for weather/event lookups.
type SerperSearchService struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewSerperSearchService(apiKey string) *SerperSearchService {
	return &SerperSearchService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://google.serper.dev",
	}
}

func (s *SerperSearchService) Search(ctx context.Context, query string) string {
	body, err := json.Marshal(map[string]string{"q": query})
	if err != nil {
		log.Printf("serper request encode error: %v", err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		log.Printf("serper request error: %v", err)
		return ""
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("serper http error: %v", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		log.Printf("serper bad status: %s", resp.Status)
		return ""
	}

	var payload struct {
		AnswerBox struct {
			Answer  string `json:"answer"`
			Snippet string `json:"snippet"`
		} `json:"answerBox"`
		Organic []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("serper decode error: %v", err)
		return ""
	}

	var lines []string
	if payload.AnswerBox.Answer != "" {
		lines = append(lines, payload.AnswerBox.Answer)
	} else if payload.AnswerBox.Snippet != "" {
		lines = append(lines, payload.AnswerBox.Snippet)
	}
	for i, item := range payload.Organic {
		if i >= 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %s", item.Title, item.Snippet))
	}

	return strings.Join(lines, "\n")
}
