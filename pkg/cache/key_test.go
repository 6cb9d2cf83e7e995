package cache

import "testing"

func TestKeyStableUnderQueryReordering(t *testing.T) {
	a := Key("GET", "https://gitlab.com/api/v4/projects?a=1&b=2", nil, "user:1")
	b := Key("GET", "https://gitlab.com/api/v4/projects?b=2&a=1", nil, "user:1")
	if a != b {
		t.Fatalf("keys differ under query reordering: %s != %s", a, b)
	}
}

func TestKeyDiffersOnMethodURLBodyOrAuth(t *testing.T) {
	base := Key("GET", "https://gitlab.com/api/v4/projects/1", nil, "user:1")

	if other := Key("POST", "https://gitlab.com/api/v4/projects/1", nil, "user:1"); other == base {
		t.Fatal("method change did not affect key")
	}
	if other := Key("GET", "https://gitlab.com/api/v4/projects/2", nil, "user:1"); other == base {
		t.Fatal("URL change did not affect key")
	}
	if other := Key("GET", "https://gitlab.com/api/v4/projects/1", []byte("x"), "user:1"); other == base {
		t.Fatal("body change did not affect key")
	}
	if other := Key("GET", "https://gitlab.com/api/v4/projects/1", nil, "user:2"); other == base {
		t.Fatal("auth discriminator change did not affect key")
	}
}

func TestShardPrefix(t *testing.T) {
	if got := ShardPrefix("abcdef"); got != "ab" {
		t.Fatalf("ShardPrefix() = %q, want %q", got, "ab")
	}
	if got := ShardPrefix("a"); got != "00" {
		t.Fatalf("ShardPrefix(short) = %q, want fallback %q", got, "00")
	}
}
