package tmux

import "testing"

func TestParsePanes(t *testing.T) {
	t.Parallel()

	output := "%0|#|0|#|zsh|#|zsh|#|120|#|52|#|1\n" +
		"%1|#|1|#|devpanel|#|devpanel|#|79|#|52|#|0\n"
	panes := parsePanes(output, "|#|")
	if len(panes) != 2 {
		t.Fatalf("got %d panes, want 2", len(panes))
	}

	first := panes[0]
	if first.ID != "%0" || first.Index != 0 || first.Command != "zsh" {
		t.Errorf("first pane = %+v", first)
	}
	if first.Width != 120 || first.Height != 52 {
		t.Errorf("first pane size = %dx%d, want 120x52", first.Width, first.Height)
	}
	if !first.Active {
		t.Error("first pane should be active")
	}

	second := panes[1]
	if second.ID != "%1" || second.Title != "devpanel" || second.Active {
		t.Errorf("second pane = %+v", second)
	}
}

func TestParsePanesSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	output := "garbage line\n\n%2|#|0|#|t|#|sh|#|80|#|24|#|0\n"
	panes := parsePanes(output, "|#|")
	if len(panes) != 1 || panes[0].ID != "%2" {
		t.Errorf("panes = %+v, want single %%2", panes)
	}
}

func TestParsePanesTitleMayContainSeparatorChars(t *testing.T) {
	t.Parallel()

	// A title containing a lone pipe must not break field splitting;
	// only the full three-char separator divides fields.
	output := "%0|#|0|#|a|b|#|zsh|#|80|#|24|#|1\n"
	panes := parsePanes(output, "|#|")
	if len(panes) != 1 {
		t.Fatalf("got %d panes, want 1", len(panes))
	}
	if panes[0].Title != "a|b" {
		t.Errorf("title = %q, want a|b", panes[0].Title)
	}
}

func TestValidateSessionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session string
		wantErr bool
	}{
		{"simple name", "devpanel", false},
		{"with dashes", "my-project", false},
		{"with underscores", "my_project", false},
		{"empty", "", true},
		{"colon", "dev:panel", true},
		{"dot", "dev.panel", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateSessionName(tt.session)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSessionName(%q) = %v, wantErr %v", tt.session, err, tt.wantErr)
			}
		})
	}
}
