package scanner

import (
	"strings"
	"testing"
)

func TestTokenizingBalanced(t *testing.T) {
	cases := []struct {
		name string
		sql  string
	}{
		{"simple", "SELECT 1"},
		{"nested parens", "SELECT * FROM (SELECT id FROM t WHERE x IN (1, 2))"},
		{"paren in literal", "SELECT '(' FROM t"},
		{"doubled quote escape", "SELECT 'it''s fine' FROM t"},
		{"backslash quote escape", `SELECT 'a\'b' FROM t`},
		{"paren in line comment", "SELECT 1 -- (((\n"},
		{"paren in block comment", "SELECT 1 /* ))) */"},
		{"quoted identifier", `SELECT "weird ) name" FROM t`},
		{"backtick identifier", "SELECT `odd ( col` FROM t"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Tokenizing{}.Scan(tc.sql)
			if !res.Balanced() {
				t.Errorf("Scan(%q) = %+v, want balanced", tc.sql, res)
			}
			if res.Empty {
				t.Errorf("Scan(%q) reported empty", tc.sql)
			}
		})
	}
}

func TestTokenizingUnbalanced(t *testing.T) {
	cases := []struct {
		name string
		sql  string
		want Result
	}{
		{"one open", "SELECT (1", Result{MissingClose: 1}},
		{"two open", "SELECT ((1", Result{MissingClose: 2}},
		{"one close", "SELECT 1)", Result{ExtraClose: 1}},
		{"close then open", ")(", Result{ExtraClose: 1, MissingClose: 1}},
		{"close pair then open", "()) (", Result{ExtraClose: 1, MissingClose: 1}},
		{"unclosed single quote", "SELECT 'abc", Result{UnclosedQuote: '\''}},
		{"unclosed double quote", `SELECT "abc`, Result{UnclosedQuote: '"'}},
		{"unclosed backtick", "SELECT `abc", Result{UnclosedQuote: '`'}},
		{"unterminated comment", "SELECT 1 /* oops", Result{UnterminatedComment: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Tokenizing{}.Scan(tc.sql)
			if res.Balanced() {
				t.Fatalf("Scan(%q) reported balanced", tc.sql)
			}
			if res.MissingClose != tc.want.MissingClose {
				t.Errorf("MissingClose = %d, want %d", res.MissingClose, tc.want.MissingClose)
			}
			if res.ExtraClose != tc.want.ExtraClose {
				t.Errorf("ExtraClose = %d, want %d", res.ExtraClose, tc.want.ExtraClose)
			}
			if res.UnclosedQuote != tc.want.UnclosedQuote {
				t.Errorf("UnclosedQuote = %q, want %q", res.UnclosedQuote, tc.want.UnclosedQuote)
			}
			if res.UnterminatedComment != tc.want.UnterminatedComment {
				t.Errorf("UnterminatedComment = %v, want %v", res.UnterminatedComment, tc.want.UnterminatedComment)
			}
		})
	}
}

func TestTokenizingEmpty(t *testing.T) {
	cases := []struct {
		name string
		sql  string
	}{
		{"empty string", ""},
		{"whitespace", "   \n\t "},
		{"line comment only", "-- just a comment\n"},
		{"block comment only", "/* nothing here */"},
		{"mixed comments", "-- a\n/* b */ -- c\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Tokenizing{}.Scan(tc.sql)
			if !res.Empty {
				t.Errorf("Scan(%q).Empty = false, want true", tc.sql)
			}
		})
	}

	if res := (Tokenizing{}).Scan("SELECT 1"); res.Empty {
		t.Error("Scan with content reported empty")
	}
}

func TestStripBlanksLiteralsAndComments(t *testing.T) {
	sql := "SELECT name FROM t WHERE note = 'se(cret' -- trailing (\n"
	stripped := Strip(sql)

	if len(stripped) != len(sql) {
		t.Fatalf("Strip changed length: %d != %d", len(stripped), len(sql))
	}
	if strings.Contains(stripped, "se(cret") {
		t.Error("literal interior survived Strip")
	}
	if strings.Contains(stripped, "trailing") {
		t.Error("comment text survived Strip")
	}
	if strings.Index(stripped, "WHERE") != strings.Index(sql, "WHERE") {
		t.Error("Strip shifted byte offsets")
	}
	// quote characters stay so token walks still see literal bounds
	if stripped[strings.Index(sql, "'")] != '\'' {
		t.Error("opening quote was blanked")
	}
}

func TestStripKeepsQuotedIdentifiers(t *testing.T) {
	sql := "SELECT `col umn` FROM \"my table\""
	stripped := Strip(sql)
	if !strings.Contains(stripped, "col umn") {
		t.Error("backtick identifier content was blanked")
	}
	if !strings.Contains(stripped, "my table") {
		t.Error("double-quoted identifier content was blanked")
	}
}

func TestStripBlockComment(t *testing.T) {
	sql := "SELECT /* hidden ( */ 1"
	stripped := Strip(sql)
	if strings.Contains(stripped, "hidden") || strings.Contains(stripped, "(") {
		t.Errorf("Strip(%q) = %q, comment content survived", sql, stripped)
	}
}

func TestNaive(t *testing.T) {
	// the naive scanner counts delimiters inside literals too
	if res := (Naive{}).Scan("SELECT '(' FROM t"); res.MissingClose != 1 {
		t.Errorf("naive MissingClose = %d, want 1 (literal paren counts)", res.MissingClose)
	}
	if res := (Naive{}).Scan("SELECT 'abc"); res.UnclosedQuote != '\'' {
		t.Errorf("naive UnclosedQuote = %q, want '", res.UnclosedQuote)
	}
	if res := (Naive{}).Scan("  \n"); !res.Empty {
		t.Error("naive whitespace-only not reported empty")
	}
	if res := (Naive{}).Scan("SELECT (a) FROM t"); !res.Balanced() {
		t.Errorf("naive balanced input reported %+v", res)
	}
}

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		name    string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyTokenizing, false},
		{"tokenizing", StrategyTokenizing, false},
		{"Tokenizing", StrategyTokenizing, false},
		{"naive", StrategyNaive, false},
		{"NAIVE", StrategyNaive, false},
		{"bogus", StrategyTokenizing, true},
	}
	for _, tc := range cases {
		got, err := ParseStrategy(tc.name)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseStrategy(%q) expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStrategy(%q) failed: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestForStrategy(t *testing.T) {
	if _, ok := ForStrategy(StrategyNaive).(Naive); !ok {
		t.Error("ForStrategy(StrategyNaive) did not return Naive")
	}
	if _, ok := ForStrategy(StrategyTokenizing).(Tokenizing); !ok {
		t.Error("ForStrategy(StrategyTokenizing) did not return Tokenizing")
	}
}
