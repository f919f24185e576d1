package cmd

import "testing"

func TestUnknownPageError(t *testing.T) {
	err := &UnknownPageError{Key: "checkout", Valid: []string{"home", "dashboard"}}
	want := `unknown page "checkout" (valid pages: home, dashboard)`
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}

	err = &UnknownPageError{Key: "checkout"}
	want = `unknown page "checkout"`
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}
}

func TestNoSessionError(t *testing.T) {
	err := &NoSessionError{}
	want := "no active audit session found (run 'storeaudit init' first)"
	if err.Error() != want {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}
