package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/config"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
)

type healthSettings struct {
	Address string `env:"PRS_ADDRESS" envDefault:":8080"`
}

func main() {
	var s healthSettings
	if err := config.ParseEnv(&s); err != nil {
		os.Exit(1)
	}
	host := s.Address
	if strings.HasPrefix(host, ":") {
		host = "127.0.0.1" + host
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + host + constants.RouteAPIPrefix + constants.RouteHealth)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
