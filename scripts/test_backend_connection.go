package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("BACKEND_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}

	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(baseURL + "/shipping-methods")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to reach backend: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Backend answered %d\n", resp.StatusCode)
		os.Exit(1)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read response: %v\n", err)
		os.Exit(1)
	}

	var methods []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &methods); err != nil {
		fmt.Fprintf(os.Stderr, "Malformed response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to backend at %s (%d shipping methods)\n", baseURL, len(methods))
}
