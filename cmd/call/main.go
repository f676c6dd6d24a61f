package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"symptom-voice-agent/internal/platform/vapi"
)

// Starts a voice call session with the configured assistant and keeps it
// alive until interrupted.
func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("VAPI_API_KEY")
	assistantID := os.Getenv("ASSISTANT_ID")
	if apiKey == "" || assistantID == "" {
		log.Fatal("VAPI_API_KEY and ASSISTANT_ID must be set")
	}

	client := vapi.NewClient(apiKey)
	ctx := context.Background()

	call, err := client.StartCall(ctx, assistantID)
	if err != nil {
		log.Fatalf("failed to start call: %v", err)
	}
	log.Printf("Call %s is active. Press Ctrl+C to hang up.", call.ID)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			if err := client.EndCall(ctx, call.ID); err != nil {
				log.Printf("failed to end call: %v", err)
			}
			log.Println("Call stopped.")
			return
		case <-ticker.C:
			current, err := client.GetCall(ctx, call.ID)
			if err != nil {
				log.Printf("failed to poll call: %v", err)
				continue
			}
			if current.Status == "ended" {
				log.Println("Call ended by remote side.")
				return
			}
		}
	}
}
