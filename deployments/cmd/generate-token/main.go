package main

import (
	"flag"
	"fmt"
	"os"

	"rideescrow/internal/shared/auth"
	"rideescrow/internal/shared/config"
)

func main() {
	participantID := flag.String("participant", "rider-1", "Participant ID")
	flag.Parse()

	cfg := config.Load()
	jwtService := auth.NewJWTService(cfg.JWT)

	token, err := jwtService.GenerateToken(*participantID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating JWT token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Participant ID: %s\n", *participantID)
	fmt.Printf("\nToken:\n%s\n", token)
	fmt.Printf("\nAuthorization: Bearer %s\n", token)
	fmt.Printf("\nExample curl:\n")
	fmt.Printf("curl -X POST http://localhost:3000/rides \\\n")
	fmt.Printf("  -H 'Authorization: Bearer %s' \\\n", token)
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"destination_id\": 0, \"payment_amount\": 1000}'\n")
}
