package audit

import (
	"context"
	"testing"
)

func TestService_AppendRequiresTypeAndAttemptIdentity(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Append(context.Background(), Event{Email: "a@b.com"}); err == nil {
		t.Fatalf("expected error for missing type")
	}
	if err := svc.Append(context.Background(), Event{Type: EventTypeLoginFailed}); err == nil {
		t.Fatalf("expected error for missing subject and email")
	}
}

func TestService_AppendsImmutableEvents(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.LogAuthEvent(context.Background(), EventTypeLoginFailed, "", "a@b.com", "1.2.3.4", "wrong password"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs := repo.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event")
	}
	if evs[0].IPAddress != "1.2.3.4" {
		t.Fatalf("expected ip captured")
	}
	if evs[0].Type != EventTypeLoginFailed {
		t.Fatalf("expected login_failed")
	}
	if evs[0].ID == "" || evs[0].CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be filled")
	}

	if !repo.HasType(EventTypeLoginFailed) {
		t.Fatalf("expected trail to report login_failed")
	}
	if repo.HasType(EventTypeLoginSucceeded) {
		t.Fatalf("did not expect login_succeeded in trail")
	}
}
