package zim_test

import (
	"reflect"
	"testing"

	"github.com/yaklabco/zim2obsidian/pkg/zim"
)

func TestTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []string
		opts     zim.Options
		expected []string
	}{
		{
			name:     "setext pair becomes atx heading",
			lines:    []string{"Title", "=====", "body"},
			expected: []string{"# Title", "body"},
		},
		{
			name:     "setext second level",
			lines:    []string{"Section", "----", "text"},
			expected: []string{"## Section", "text"},
		},
		{
			name:     "single dash underline promotes",
			lines:    []string{"Head", "-"},
			expected: []string{"## Head"},
		},
		{
			name:     "underline without text stays plain",
			lines:    []string{"", "===="},
			expected: []string{"", "===="},
		},
		{
			name:     "rule variants become canonical rules",
			lines:    []string{"a", "* * *", "b", "___", "c"},
			expected: []string{"a", "---", "b", "---", "c"},
		},
		{
			name:     "dash rule after blank line",
			lines:    []string{"", "---"},
			expected: []string{"", "---"},
		},
		{
			name:     "fenced code passes through",
			lines:    []string{"```", "☐ raw", "```", "☑ after"},
			expected: []string{"```", "☐ raw", "```", "- [x] after"},
		},
		{
			name:     "setext pair inside fence is not a heading",
			lines:    []string{"```", "Title", "=====", "```"},
			expected: []string{"```", "Title", "=====", "```"},
		},
		{
			name:     "verbatim run gains fences",
			lines:    []string{"para", "\tx = 1", "\ty = 2", "end"},
			expected: []string{"para", "```", "\tx = 1", "\ty = 2", "```", "end"},
		},
		{
			name:     "verbatim run at end of input is closed",
			lines:    []string{"\tcode"},
			expected: []string{"```", "\tcode", "```"},
		},
		{
			name:     "backticks mode passes tabs through",
			lines:    []string{"\t☐ indented"},
			opts:     zim.Options{Backticks: true},
			expected: []string{"\t- [ ] indented"},
		},
		{
			name:     "backticks mode excludes inline code",
			lines:    []string{"use `__x__` and __y__"},
			opts:     zim.Options{Backticks: true},
			expected: []string{"use `__x__` and ==y=="},
		},
		{
			name:     "backticks mode respects existing fences",
			lines:    []string{"```", "☐ x", "```"},
			opts:     zim.Options{Backticks: true},
			expected: []string{"```", "☐ x", "```"},
		},
		{
			name:     "markdown links split one per line",
			lines:    []string{"see [Alpha](alpha.md) and [Beta](beta.md)."},
			expected: []string{"see ", "[[alpha.md|Alpha]]", " and ", "[[beta.md|Beta]]", "."},
		},
		{
			name:     "empty address derives target from description",
			lines:    []string{"[Journal:2024]()"},
			expected: []string{"[[Journal/2024]]"},
		},
		{
			name:     "external URL line is untouched",
			lines:    []string{"[site](https://example.com/x) tail"},
			expected: []string{"[site](https://example.com/x) tail"},
		},
		{
			name:     "wiki links stay in place",
			lines:    []string{"pre [[other]] post"},
			expected: []string{"pre [[other]] post"},
		},
		{
			name:     "checkbox with wiki link stays one line",
			lines:    []string{"☐ read [[guide]]"},
			expected: []string{"- [ ] read [[guide]]"},
		},
		{
			name:     "checkbox with markdown link splits",
			lines:    []string{"☐ read [guide](guide.md)"},
			expected: []string{"- [ ] read ", "[[guide.md|guide]]"},
		},
		{
			name:     "markdown links kept in markdown mode",
			lines:    []string{"see [Alpha](My%20Page.md) end"},
			opts:     zim.Options{MDLinks: true},
			expected: []string{"see [Alpha](My%20Page.md) end"},
		},
		{
			name:     "tags and highlights",
			lines:    []string{"note @home __big__"},
			expected: []string{"note #home ==big=="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := zim.Transform(tt.lines, tt.opts)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Transform(%q) = %q, want %q", tt.lines, result, tt.expected)
			}
		})
	}
}

func TestTransform_EmptyInput(t *testing.T) {
	t.Parallel()

	result := zim.Transform(nil, zim.Options{})

	if len(result) != 0 {
		t.Errorf("Transform(nil) = %q, want no lines", result)
	}
}

func TestTransform_LinkHook(t *testing.T) {
	t.Parallel()

	renames := map[string]string{"other": "shopping", "guide.md": "field-guide.md"}
	var seen []string
	opts := zim.Options{
		Links: func(l zim.Link) zim.Link {
			seen = append(seen, l.Target)
			if to, ok := renames[l.Target]; ok {
				l.Target = to
			}
			return l
		},
	}

	lines := []string{
		"pre [[other]] post",
		"[go](https://example.com)",
		"read [guide](guide.md) now",
	}
	result := zim.Transform(lines, opts)

	expected := []string{
		"pre [[shopping]] post",
		"[go](https://example.com)",
		"read ",
		"[[field-guide.md|guide]]",
		" now",
	}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Transform() = %q, want %q", result, expected)
	}

	// The hook must never see external URLs.
	wantSeen := []string{"other", "guide.md"}
	if !reflect.DeepEqual(seen, wantSeen) {
		t.Errorf("link hook saw %q, want %q", seen, wantSeen)
	}
}

func TestTransform_DetectLanguage(t *testing.T) {
	t.Parallel()

	var captured string
	opts := zim.Options{
		DetectLanguage: func(content []byte) string {
			captured = string(content)
			return "go"
		},
	}

	lines := []string{"intro", "\tfmt.Println(1)", "\tfmt.Println(2)", "outro"}
	result := zim.Transform(lines, opts)

	expected := []string{"intro", "```go", "\tfmt.Println(1)", "\tfmt.Println(2)", "```", "outro"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Transform() = %q, want %q", result, expected)
	}

	// The detector sees the run content without the indent tabs.
	if captured != "fmt.Println(1)\nfmt.Println(2)" {
		t.Errorf("detector received %q", captured)
	}
}

func TestTransform_FullPage(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Health",
		"======",
		"",
		"Exercises",
		"---------",
		"☐ stretch",
		"☑ run 5k",
		"",
		"See [plan](Training%20Plan.md).",
		"",
		"\techo warmup",
		"",
		"* * *",
		"notes @fitness",
	}

	expected := []string{
		"# Health",
		"",
		"## Exercises",
		"- [ ] stretch",
		"- [x] run 5k",
		"",
		"See ",
		"[[Training Plan.md|plan]]",
		".",
		"",
		"```",
		"\techo warmup",
		"```",
		"",
		"---",
		"notes #fitness",
	}

	result := zim.Transform(lines, zim.Options{})

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Transform() = %q, want %q", result, expected)
	}
}
