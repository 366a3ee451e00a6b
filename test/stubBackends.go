// Local stand-ins for a manual run: a list provider on :8081 and two
// forward proxies on :8082 and :8083. Point provider.url at
// http://127.0.0.1:8081/ and call /fetch on the rotator.
package main

import (
	"fmt"
	"log"
	"net/http"
)

func startStub(port string, handler http.HandlerFunc) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		log.Printf("Starting stub on port %s...", port)
		if err := server.ListenAndServe(); err != nil {
			log.Fatalf("Error starting stub on port %s: %v", port, err)
		}
	}()
}

func main() {
	proxies := []string{"8082", "8083"}

	startStub("8081", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		for _, port := range proxies {
			fmt.Fprintf(w, "127.0.0.1:%s\r\n\r\n", port)
		}
	})

	for _, port := range proxies {
		port := port
		startStub(port, func(w http.ResponseWriter, r *http.Request) {
			log.Printf("Proxy on port %s got request: %s %s", port, r.Method, r.URL.String())
			fmt.Fprintf(w, "Relayed by stub proxy on port %s: %s\n", port, r.URL.String())
		})
	}

	select {} // block forever
}
