package redis

import (
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(Config{URL: "not-a-redis-url"})
	if err == nil {
		t.Fatal("expected error for invalid redis URL")
	}
}

func TestClient_Channel(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer rdb.Close()

	c := newClient(rdb, "stacksyield:bridge")
	if c.Channel() != "stacksyield:bridge" {
		t.Errorf("expected channel stacksyield:bridge, got %s", c.Channel())
	}
}
