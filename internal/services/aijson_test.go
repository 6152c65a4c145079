package services

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			name: "clean object",
			raw:  `{"mode": "NORMAL"}`,
			want: `{"mode": "NORMAL"}`,
			ok:   true,
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"mode\": \"LIGHT\"}\n```",
			want: `{"mode": "LIGHT"}`,
			ok:   true,
		},
		{
			name: "bare code fence",
			raw:  "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
			ok:   true,
		},
		{
			name: "prose around object",
			raw:  `Sure! Here is the plan: {"mode": "HIGH", "reason": "busy"} Hope that helps.`,
			want: `{"mode": "HIGH", "reason": "busy"}`,
			ok:   true,
		},
		{
			name: "braces inside strings",
			raw:  `{"reason": "use {curly} notation", "mode": "OFF"}`,
			want: `{"reason": "use {curly} notation", "mode": "OFF"}`,
			ok:   true,
		},
		{
			name: "invalid escape repaired",
			raw:  `{"reason": "due \d days from now"}`,
			want: `{"reason": "due \\d days from now"}`,
			ok:   true,
		},
		{
			name: "prose only",
			raw:  "I would suggest studying in the morning.",
			ok:   false,
		},
		{
			name: "empty",
			raw:  "",
			ok:   false,
		},
		{
			name: "array not object",
			raw:  `[1, 2, 3]`,
			ok:   false,
		},
		{
			name: "unterminated object",
			raw:  `{"mode": "NORMAL"`,
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v (got %q)", ok, tt.ok, got)
			}
			if ok && got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
