package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tobibamidele/spotter"
	"github.com/tobibamidele/spotter/config"
)

func main() {
	// Create a more advanced configuration
	cfg := config.NewConfigBuilder().
		WithBaseURL("https://ucam.takeaspot.com").
		WithDatabase(config.SQLite, "spotter.db").
		WithSessionStore("spotter_session.bin", os.Getenv("SPOTTER_PASSPHRASE")).
		WithDefaultService(845).
		WithRateLimit(true, 2, 4). // 2 req/s, bursts of 4
		Build()

	engine, err := spotter.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize spotter:", err)
	}
	defer engine.Close()

	ctx := context.Background()

	// Watch the active-account pointer. The channel is conflated: it
	// delivers the current value immediately and the latest value after
	// every change, dropping intermediates under load.
	go func() {
		for id := range engine.WatchActiveAccountID(ctx) {
			if id == "" {
				log.Println("active account cleared")
			} else {
				log.Println("active account:", id)
			}
		}
	}()

	// React to server-side session expiry. The event fires at most once
	// per expired request and arrives after the request already failed.
	go func() {
		for ev := range engine.SubscribeSessionExpired(ctx) {
			log.Printf("session expired for account %s, re-login needed", ev.AccountID)
		}
	}()

	// List saved accounts (up to four) and activate the first one.
	accounts, err := engine.Accounts(ctx)
	if err != nil {
		log.Fatal("Failed to list accounts:", err)
	}
	if len(accounts) == 0 {
		log.Println("No saved accounts. Capture a login first.")
		return
	}

	for _, a := range accounts {
		live := "expired"
		if a.HasLiveSession() {
			live = "live"
		}
		fmt.Printf("%s  %-20s session %s\n", a.ID, a.Alias, live)
	}

	if err := engine.SetActiveAccount(ctx, accounts[0].ID); err != nil {
		log.Fatal("Failed to activate account:", err)
	}

	bookings, err := engine.MyBookings(ctx)
	if err != nil {
		log.Fatal("Failed to fetch bookings:", err)
	}
	for _, b := range bookings {
		fmt.Printf("#%d %s %s-%s %s (%s)\n",
			b.ID, b.Date, b.StartTime, b.EndTime, b.TableName, b.StatusText)
	}
}
