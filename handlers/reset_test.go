package handlers

import (
	"testing"
	"time"
)

func TestResetCodeVerifyAndConsume(t *testing.T) {
	store := newResetCodeStore(time.Minute)
	store.Set("a@example.com", "123456")

	if store.Verify("a@example.com", "999999") {
		t.Error("wrong code verified")
	}
	if store.Consume("a@example.com") {
		t.Error("consumed without verification")
	}
	if !store.Verify("a@example.com", "123456") {
		t.Error("correct code rejected")
	}
	if !store.Consume("a@example.com") {
		t.Error("verified entry not consumed")
	}
	// Consuming is one-shot.
	if store.Consume("a@example.com") {
		t.Error("entry consumed twice")
	}
}

func TestResetCodeExpiry(t *testing.T) {
	store := newResetCodeStore(-time.Second)
	store.Set("a@example.com", "123456")

	if store.Verify("a@example.com", "123456") {
		t.Error("expired code verified")
	}
	if store.Consume("a@example.com") {
		t.Error("expired entry consumed")
	}
}

func TestResetCodeUnknownEmail(t *testing.T) {
	store := newResetCodeStore(time.Minute)
	if store.Verify("missing@example.com", "123456") {
		t.Error("verified a code that was never set")
	}
}

func TestResetCodeOverwrite(t *testing.T) {
	store := newResetCodeStore(time.Minute)
	store.Set("a@example.com", "111111")
	store.Set("a@example.com", "222222")

	if store.Verify("a@example.com", "111111") {
		t.Error("stale code verified after overwrite")
	}
	if !store.Verify("a@example.com", "222222") {
		t.Error("latest code rejected")
	}
}
