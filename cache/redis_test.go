package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedis_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	tier := NewRedisFromClient(db, time.Hour, "test:", nil)

	mock.ExpectGet("test:mykey").SetVal("myvalue")

	val, ok := tier.Get("mykey")
	if !ok {
		t.Error("Expected cache hit")
	}
	if val != "myvalue" {
		t.Errorf("Expected 'myvalue', got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	tier := NewRedisFromClient(db, time.Hour, "test:", nil)

	mock.ExpectGet("test:mykey").RedisNil()

	val, ok := tier.Get("mykey")
	if ok {
		t.Error("Expected cache miss")
	}
	if val != "" {
		t.Errorf("Expected empty string, got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_Get_ErrorIsMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	tier := NewRedisFromClient(db, time.Hour, "test:", nil)

	mock.ExpectGet("test:mykey").SetErr(errors.New("connection refused"))

	if _, ok := tier.Get("mykey"); ok {
		t.Error("Redis errors should degrade to a miss")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	tier := NewRedisFromClient(db, time.Hour, "test:", nil)

	mock.ExpectSet("test:mykey", "myvalue", time.Hour).SetVal("OK")

	if err := tier.Set("mykey", "myvalue"); err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_Set_NoTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	tier := NewRedisFromClient(db, 0, "test:", nil)

	mock.ExpectSet("test:mykey", "myvalue", 0).SetVal("OK")

	if err := tier.Set("mykey", "myvalue"); err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_DefaultKeyPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	tier := NewRedisFromClient(db, time.Hour, "", nil)

	mock.ExpectGet("lingo:hash123").SetVal("translated")

	val, ok := tier.Get("hash123")
	if !ok || val != "translated" {
		t.Errorf("Expected 'translated', got %q (ok=%v)", val, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	tier := NewRedisFromClient(db, time.Hour, "test:", nil)

	mock.ExpectPing().SetVal("PONG")

	if err := tier.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedis_Close(t *testing.T) {
	db, mock := redismock.NewClientMock()

	tier := NewRedisFromClient(db, time.Hour, "test:", nil)

	if err := tier.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	_ = mock
}
