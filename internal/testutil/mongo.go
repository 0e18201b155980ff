//go:build integration

// Package testutil starts throwaway MongoDB replica sets for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// MongoImage is the server version the repositories are tested against.
const MongoImage = "mongo:7.0"

// Mongo is a running single-node replica set. Allocation writes use
// multi-document transactions, which a standalone server rejects.
type Mongo struct {
	Container testcontainers.Container
	URI       string
}

// StartMongo launches a fresh container owned by the caller.
func StartMongo(ctx context.Context) (*Mongo, error) {
	container, err := mongodb.Run(ctx, MongoImage, mongodb.WithReplicaSet("rs0"))
	if err != nil {
		return nil, fmt.Errorf("start mongo container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("mongo connection string: %w", err)
	}

	return &Mongo{Container: container, URI: uri}, nil
}

// Stop terminates the container. Safe on a nil receiver.
func (m *Mongo) Stop(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate mongo container: %w", err)
	}
	return nil
}

var (
	shared   *Mongo
	sharedMu sync.RWMutex
)

// RunWithSharedMongo is meant for TestMain: it starts one container for the
// whole package, runs the tests and tears the container down.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.RunWithSharedMongo(m))
//	}
func RunWithSharedMongo(m *testing.M) int {
	ctx := context.Background()

	mongo, err := StartMongo(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "integration tests need docker: %v\n", err)
		return 1
	}

	sharedMu.Lock()
	shared = mongo
	sharedMu.Unlock()

	code := m.Run()

	sharedMu.Lock()
	shared = nil
	sharedMu.Unlock()

	if err := mongo.Stop(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// SharedURI returns the connection string of the package container.
func SharedURI() string {
	sharedMu.RLock()
	defer sharedMu.RUnlock()

	if shared == nil {
		panic("testutil: shared mongo not running, call RunWithSharedMongo from TestMain")
	}
	return shared.URI
}

// DatabaseName turns a test name into a unique database name so tests sharing
// a container never see each other's farms.
func DatabaseName(testName string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ".", "_").Replace(testName)
	if len(name) > 40 {
		name = name[:40]
	}
	return name + "_" + uuid.NewString()[:8]
}
