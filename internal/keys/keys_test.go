package keys

import "testing"

func TestSlotKey(t *testing.T) {
	cases := []struct {
		ns, slot, want string
	}{
		{"default", "active_run", "default:active_run"},
		{"  My Save ", "Run History", "my_save:run_history"},
		{"", "progression", "default:progression"},
	}
	for _, tc := range cases {
		if got := SlotKey(tc.ns, tc.slot); got != tc.want {
			t.Fatalf("SlotKey(%q, %q) = %q, want %q", tc.ns, tc.slot, got, tc.want)
		}
	}
}
