package domain

import "testing"

func TestAvatarURL(t *testing.T) {
	u := &User{Email: "User@Example.com"}

	got := u.AvatarURL(80)
	want := "https://www.gravatar.com/avatar/b58996c504c5638798eb6b511e6f49af?d=identicon&s=80"
	if got != want {
		t.Fatalf("AvatarURL(80) = %q, want %q", got, want)
	}
}

func TestAvatarURL_LowercasesEmail(t *testing.T) {
	lower := &User{Email: "mixed@case.com"}
	mixed := &User{Email: "MiXeD@Case.COM"}

	if lower.AvatarURL(128) != mixed.AvatarURL(128) {
		t.Fatalf("avatar URL must not depend on email casing: %q vs %q",
			lower.AvatarURL(128), mixed.AvatarURL(128))
	}
}

func TestAvatarURL_SizeParameter(t *testing.T) {
	u := &User{Email: "user@example.com"}

	small := u.AvatarURL(32)
	large := u.AvatarURL(256)
	if small == large {
		t.Fatalf("different sizes produced identical URLs: %q", small)
	}
}
