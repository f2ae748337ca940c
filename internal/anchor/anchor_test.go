package anchor_test

import (
	"testing"

	"github.com/bitsboot/md2blog/internal/anchor"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "punctuation tail", in: "Boot Stages!!", want: "boot-stages"},
		{name: "already slug", in: "boot-stages", want: "boot-stages"},
		{name: "surrounding whitespace", in: "  Kernel  ", want: "kernel"},
		{name: "mixed separators", in: "GRUB 2.x / UEFI", want: "grub-2-x-uefi"},
		{name: "leading punctuation", in: "--init--", want: "init"},
		{name: "digits kept", in: "Step 10", want: "step-10"},
		{name: "underscore is a separator", in: "init_task", want: "init-task"},
		{name: "non-ascii letters dropped", in: "Café Über", want: "caf-ber"},
		{name: "only punctuation", in: "???", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := anchor.Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestForHeading(t *testing.T) {
	t.Parallel()

	if got := anchor.ForHeading("Boot Stages!!", 3); got != "boot-stages" {
		t.Errorf("ForHeading() = %q, want %q", got, "boot-stages")
	}
	if got := anchor.ForHeading("!!!", 3); got != "heading-3" {
		t.Errorf("ForHeading() = %q, want %q", got, "heading-3")
	}
}
