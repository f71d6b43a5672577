package datastore_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/datastore"
	"github.com/aretw0/datastore/pkg/settings"
)

// Example_basic opens a settings file, changes it and reads it back.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "datastore-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := datastore.OpenSettings(filepath.Join(tmpDir, "app-settings.json"))
	if err != nil {
		log.Fatal(err)
	}
	defer svc.Close()

	ctx := context.Background()
	fmt.Println("language:", svc.Current().Language)

	if _, err := svc.SetLanguage(ctx, settings.German); err != nil {
		log.Fatal(err)
	}
	if _, err := svc.AddLocation(ctx, settings.Location{Lat: 10, Lng: 20}); err != nil {
		log.Fatal(err)
	}

	current := svc.Current()
	fmt.Println("language:", current.Language)
	for loc := range current.Locations.All() {
		fmt.Println("location:", loc)
	}
	// Output:
	// language: ENGLISH
	// language: GERMAN
	// location: lat=10, lng=20
}

type prefs struct {
	Theme    string `json:"theme"`
	FontSize int    `json:"fontSize"`
}

// ExampleOpen stores a custom document type in YAML.
func ExampleOpen() {
	tmpDir, err := os.MkdirTemp("", "datastore-generic-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	defaults := func() prefs { return prefs{Theme: "light", FontSize: 12} }

	st, err := datastore.Open(filepath.Join(tmpDir, "prefs.yaml"), defaults)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	next, err := st.Update(context.Background(), func(cur prefs) (prefs, error) {
		cur.Theme = "dark"
		return cur, nil
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s %d\n", next.Theme, next.FontSize)
	// Output:
	// dark 12
}
