//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"sfusd-lunch-menu/internal/ledger"
)

func main() {
	projectID := flag.String("project", "", "GCP project ID (empty for the local ledger)")
	collection := flag.String("collection", "lunch-menu-publishes", "Firestore collection name")
	dir := flag.String("dir", "data/ledger", "Local ledger directory")
	asJSON := flag.Bool("json", false, "Dump raw entries as JSON")
	flag.Parse()

	ctx := context.Background()

	var led ledger.Ledger
	if *projectID != "" {
		fsLedger, err := ledger.NewFirestore(ctx, *projectID, *collection)
		if err != nil {
			log.Fatalf("Failed to create Firestore ledger: %v", err)
		}
		defer fsLedger.Close()
		led = fsLedger
	} else {
		localLedger, err := ledger.NewLocal(*dir)
		if err != nil {
			log.Fatalf("Failed to open local ledger: %v", err)
		}
		led = localLedger
	}

	entries, err := led.Months(ctx)
	if err != nil {
		log.Fatalf("Error listing ledger entries: %v", err)
	}

	if *asJSON {
		data, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println("Published months:")
	fmt.Println("-----------------")
	for _, e := range entries {
		fmt.Printf("%-10s %d  %3d created  %3d skipped  published %s\n",
			e.Month, e.Year, e.Created, e.Skipped, e.PublishedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println("-----------------")
	fmt.Printf("%d months\n", len(entries))
}
