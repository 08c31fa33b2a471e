package domain

import (
	"testing"
	"time"
)

func testResolver() *VarResolver {
	return NewVarResolver(
		WithNow(func() time.Time { return time.Unix(1700000000, 0) }),
		WithUUID(func() (string, error) { return "fixed-uuid", nil }),
	)
}

func TestResolveString_Vars(t *testing.T) {
	rt, err := testResolver().NewRuntime(Vars{"app": "chat"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := rt.ResolveString("/apps/{{app}}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/apps/chat" {
		t.Fatalf("expected /apps/chat, got %q", got)
	}
}

func TestResolveString_Builtins(t *testing.T) {
	rt, err := testResolver().NewRuntime(nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := rt.ResolveString("{{$timestamp}}-{{$uuid}}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "1700000000-fixed-uuid" {
		t.Fatalf("unexpected resolution: %q", got)
	}
}

func TestResolveString_MissingVar(t *testing.T) {
	rt, err := testResolver().NewRuntime(Vars{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := rt.ResolveString("/{{nope}}"); err == nil {
		t.Fatalf("expected error for unknown variable")
	} else if !IsKind(err, KindMissingVar) {
		t.Fatalf("expected missing_variable kind, got %v", err)
	}
}

func TestResolveString_NoPlaceholders(t *testing.T) {
	rt, err := testResolver().NewRuntime(nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := rt.ResolveString("/shared/")
	if err != nil || got != "/shared/" {
		t.Fatalf("expected passthrough, got %q (%v)", got, err)
	}
}

func TestResolveCheck(t *testing.T) {
	rt, err := testResolver().NewRuntime(Vars{"app": "chat", "token": "secret"})
	if err != nil {
		t.Fatal(err)
	}

	in := CheckSpec{
		Name:    "chat",
		Path:    "/apps/{{app}}",
		Headers: Headers{"Authorization": "Bearer {{token}}"},
	}
	out, err := rt.ResolveCheck(in)
	if err != nil {
		t.Fatal(err)
	}
	if out.Path != "/apps/chat" {
		t.Fatalf("unexpected path: %q", out.Path)
	}
	if out.Headers["Authorization"] != "Bearer secret" {
		t.Fatalf("unexpected header: %q", out.Headers["Authorization"])
	}
	if in.Path != "/apps/{{app}}" {
		t.Fatalf("expected input spec to stay untouched")
	}
}
