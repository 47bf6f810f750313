package main

import (
	"log"

	"github.com/arsalankhan8/Cigul-Recruitment/internal/server"
)

func main() {
	srv := server.NewServer()

	log.Printf("Server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %s", err)
	}
}
