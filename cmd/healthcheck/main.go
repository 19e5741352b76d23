package main

import (
	"net/http"
	"os"
	"time"

	"github.com/ericogr/giera/internal/constants"
)

const defaultHealthcheckURL = "http://127.0.0.1:8080/api/version"

func main() {
	url := os.Getenv(constants.EnvHealthcheckURL)
	if url == "" {
		url = defaultHealthcheckURL
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
