package core

import "testing"

func TestCamelCase(t *testing.T) {
	tests := []struct {
		words []string
		want  string
	}{
		{[]string{"hello"}, "hello"},
		{[]string{"hello", "world"}, "helloWorld"},
		{[]string{"hello-world_lovely day"}, "helloWorldLovelyDay"},
		{[]string{"hello_world", "something"}, "helloWorldSomething"},
		{[]string{"hello_world", "example-string"}, "helloWorldExampleString"},
		{[]string{"Start", "DAY"}, "startDay"},
		{[]string{"", "day"}, "day"},
	}
	for _, tc := range tests {
		if got := CamelCase(tc.words...); got != tc.want {
			t.Errorf("CamelCase(%q) = %q, want %q", tc.words, got, tc.want)
		}
	}
}

func TestNormalizeTypeName(t *testing.T) {
	got, err := NormalizeTypeName("HELLO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
	if _, err := NormalizeTypeName(""); err == nil {
		t.Error("expected error for empty name")
	}
}
