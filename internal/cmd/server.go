package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(services *Services, config *Config) *http.Server {
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: config.Server.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	handler := c.Handler(services.Gateway.Router())

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", getEnv("PORT", strconv.Itoa(config.Server.Port))),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}
