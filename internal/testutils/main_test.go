//go:build integration

package testutils

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"testing"
)

// TestMain ensures the shared container is removed even when the run is
// interrupted.
func TestMain(m *testing.M) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Received interrupt signal, cleaning up Docker containers...")
		CleanupSharedContainer()
		os.Exit(1)
	}()

	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

func TestSharedContainerMigratesUsers(t *testing.T) {
	s := SetupTestSuite(t)
	defer s.TeardownTestSuite()

	if !s.DB.Migrator().HasTable("users") {
		t.Fatal("users table was not migrated")
	}
}
